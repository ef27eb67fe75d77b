// Package ui implements Ironyy's line-oriented console: pages rendered as
// text lines, a page-stack navigator, and the user prompts.
package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ironyy/ironyy/internal/store"
)

// ActionKind enumerates what a page asked the navigator to do.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionExit
	ActionBack
	ActionOpenEpic
	ActionOpenStory
	ActionCreateEpic
	ActionCreateStory
	ActionUpdateEpicStatus
	ActionUpdateStoryStatus
	ActionDeleteEpic
	ActionDeleteStory
)

// Action is the outcome of handling one line of user input. ID carries the
// epic or story the action targets, when applicable.
type Action struct {
	Kind ActionKind
	ID   uint32
}

// Page is one screen of the console UI.
type Page interface {
	// Draw renders the page as console lines.
	Draw() ([]string, error)
	// HandleInput maps one trimmed input line to an action. Unrecognized
	// input yields ActionNone.
	HandleInput(input string) (Action, error)
}

// columnString fits text into a fixed-width table column, right-padding short
// values and truncating long ones with an ellipsis.
func columnString(text string, width int) string {
	runes := []rune(text)
	switch {
	case len(runes) == width:
		return text
	case len(runes) < width:
		return text + strings.Repeat(" ", width-len(runes))
	case width <= 3:
		return strings.Repeat(".", width)
	default:
		return string(runes[:width-3]) + "..."
	}
}

// HomePage lists all epics.
type HomePage struct {
	DB *store.Database
}

func (p *HomePage) Draw() ([]string, error) {
	lines := []string{
		"----------------------------- EPICS -----------------------------",
		"     id     |               name               |      status      ",
	}

	state := p.DB.Read()
	ids := make([]uint32, 0, len(state.Epics))
	for id := range state.Epics {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		epic := state.Epics[id]
		lines = append(lines, fmt.Sprintf("%s | %s | %s",
			columnString(strconv.FormatUint(uint64(id), 10), 11),
			columnString(epic.Name, 32),
			columnString(epic.Status.String(), 16),
		))
	}

	lines = append(lines, "", "",
		"[q] quit | [c] create epic | [:id:] navigate to epic",
	)
	return lines, nil
}

func (p *HomePage) HandleInput(input string) (Action, error) {
	switch input {
	case "q":
		return Action{Kind: ActionExit}, nil
	case "c":
		return Action{Kind: ActionCreateEpic}, nil
	default:
		id, err := strconv.ParseUint(input, 10, 32)
		if err != nil {
			return Action{}, nil
		}
		if _, ok := p.DB.Read().Epics[uint32(id)]; !ok {
			return Action{}, nil
		}
		return Action{Kind: ActionOpenEpic, ID: uint32(id)}, nil
	}
}

// EpicDetail shows one epic and its stories.
type EpicDetail struct {
	EpicID uint32
	DB     *store.Database
}

func (p *EpicDetail) Draw() ([]string, error) {
	state := p.DB.Read()
	epic, ok := state.Epics[p.EpicID]
	if !ok {
		return nil, fmt.Errorf("epic %d: %w", p.EpicID, store.ErrNotFound)
	}

	lines := []string{
		"------------------------------ EPIC ------------------------------",
		"  id  |     name     |         description         |    status    ",
		fmt.Sprintf("%s | %s | %s | %s",
			columnString(strconv.FormatUint(uint64(p.EpicID), 10), 5),
			columnString(epic.Name, 12),
			columnString(epic.Description, 27),
			columnString(epic.Status.String(), 12),
		),
		"",
		"---------------------------- STORIES ----------------------------",
		"     id     |               name               |      status      ",
	}

	for _, storyID := range epic.StoryIDs {
		story, ok := state.Stories[storyID]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s | %s | %s",
			columnString(strconv.FormatUint(uint64(storyID), 10), 11),
			columnString(story.Name, 32),
			columnString(story.Status.String(), 16),
		))
	}

	lines = append(lines, "", "",
		"[p] previous | [u] update epic | [d] delete epic | [c] create story | [:id:] navigate to story",
	)
	return lines, nil
}

func (p *EpicDetail) HandleInput(input string) (Action, error) {
	switch input {
	case "p":
		return Action{Kind: ActionBack}, nil
	case "u":
		return Action{Kind: ActionUpdateEpicStatus, ID: p.EpicID}, nil
	case "d":
		return Action{Kind: ActionDeleteEpic, ID: p.EpicID}, nil
	case "c":
		return Action{Kind: ActionCreateStory, ID: p.EpicID}, nil
	default:
		id, err := strconv.ParseUint(input, 10, 32)
		if err != nil {
			return Action{}, nil
		}
		if _, ok := p.DB.Read().Stories[uint32(id)]; !ok {
			return Action{}, nil
		}
		return Action{Kind: ActionOpenStory, ID: uint32(id)}, nil
	}
}

// StoryDetail shows one story.
type StoryDetail struct {
	StoryID uint32
	DB      *store.Database
}

func (p *StoryDetail) Draw() ([]string, error) {
	state := p.DB.Read()
	story, ok := state.Stories[p.StoryID]
	if !ok {
		return nil, fmt.Errorf("story %d: %w", p.StoryID, store.ErrNotFound)
	}

	lines := []string{
		"------------------------------ STORY ------------------------------",
		"  id  |     name     |         description         |    status    ",
		fmt.Sprintf("%s | %s | %s | %s",
			columnString(strconv.FormatUint(uint64(p.StoryID), 10), 5),
			columnString(story.Name, 12),
			columnString(story.Description, 27),
			columnString(story.Status.String(), 13),
		),
		"", "",
		"[p] previous | [u] update story | [d] delete story",
	}
	return lines, nil
}

func (p *StoryDetail) HandleInput(input string) (Action, error) {
	switch input {
	case "p":
		return Action{Kind: ActionBack}, nil
	case "u":
		return Action{Kind: ActionUpdateStoryStatus, ID: p.StoryID}, nil
	case "d":
		return Action{Kind: ActionDeleteStory, ID: p.StoryID}, nil
	default:
		return Action{}, nil
	}
}
