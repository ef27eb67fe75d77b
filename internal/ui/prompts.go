package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ironyy/ironyy/internal/models"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

const promptDivider = "----------------------------"

// Prompts bundles the interactive questions the navigator asks. Each field
// is swappable so tests can drive the navigator without a terminal.
type Prompts struct {
	CreateEpic   func() (*models.Epic, error)
	CreateStory  func() (*models.Story, error)
	DeleteEpic   func() (bool, error)
	DeleteStory  func() (bool, error)
	UpdateStatus func() (models.Status, bool, error)
	Line         func(prompt string) (string, error)
	Password     func(prompt string) (string, error)
}

// NewPrompts returns prompts reading from stdin, with password entry done
// without echo.
func NewPrompts() *Prompts {
	reader := bufio.NewReader(os.Stdin)
	return &Prompts{
		CreateEpic:   func() (*models.Epic, error) { return createEpicPrompt(reader) },
		CreateStory:  func() (*models.Story, error) { return createStoryPrompt(reader) },
		DeleteEpic: func() (bool, error) {
			return confirmPrompt(reader,
				"Are you sure you want to delete this epic? All stories in this epic will also be deleted [Y/n]:")
		},
		DeleteStory: func() (bool, error) {
			return confirmPrompt(reader, "Are you sure you want to delete this story? [Y/n]:")
		},
		UpdateStatus: func() (models.Status, bool, error) { return updateStatusPrompt(reader) },
		Line:         func(prompt string) (string, error) { return linePrompt(reader, prompt) },
		Password:     passwordPrompt,
	}
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func linePrompt(reader *bufio.Reader, prompt string) (string, error) {
	if prompt != "" {
		fmt.Println(prompt)
	}
	return readLine(reader)
}

func passwordPrompt(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func createEpicPrompt(reader *bufio.Reader) (*models.Epic, error) {
	fmt.Println(promptDivider)
	name, err := linePrompt(reader, "Epic Name:")
	if err != nil {
		return nil, err
	}
	description, err := linePrompt(reader, "Epic Description:")
	if err != nil {
		return nil, err
	}
	return models.NewEpic(name, description), nil
}

func createStoryPrompt(reader *bufio.Reader) (*models.Story, error) {
	fmt.Println(promptDivider)
	name, err := linePrompt(reader, "Story Name:")
	if err != nil {
		return nil, err
	}
	description, err := linePrompt(reader, "Story Description:")
	if err != nil {
		return nil, err
	}
	return models.NewStory(name, description), nil
}

func confirmPrompt(reader *bufio.Reader, question string) (bool, error) {
	fmt.Println(promptDivider)
	answer, err := linePrompt(reader, question)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "", nil
}

func updateStatusPrompt(reader *bufio.Reader) (models.Status, bool, error) {
	fmt.Println(promptDivider)
	input, err := linePrompt(reader, "New Status (1 - OPEN, 2 - IN-PROGRESS, 3 - RESOLVED, 4 - CLOSED):")
	if err != nil {
		return 0, false, err
	}
	switch input {
	case "1":
		return models.StatusOpen, true, nil
	case "2":
		return models.StatusInProgress, true, nil
	case "3":
		return models.StatusResolved, true, nil
	case "4":
		return models.StatusClosed, true, nil
	default:
		return 0, false, nil
	}
}
