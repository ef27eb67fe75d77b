package ui

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironyy/ironyy/internal/models"
	"github.com/ironyy/ironyy/internal/store"
)

func seededDB(t *testing.T) (*store.Database, uint32, uint32) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "db.json"), nil)
	require.NoError(t, err)

	epic := models.NewEpic("Epic - Project 1", "This is Project 1 for the first epic!!!")
	epic.Status = models.StatusInProgress
	epicID, err := db.CreateEpic(epic)
	require.NoError(t, err)

	storyID, err := db.CreateStory(epicID, models.NewStory("Story - Project 1 Solution", "This is Task 1 for the first story!!!"))
	require.NoError(t, err)
	require.NoError(t, db.UpdateStoryStatus(storyID, models.StatusClosed))

	return db, epicID, storyID
}

func TestColumnString(t *testing.T) {
	assert.Equal(t, "exact", columnString("exact", 5))
	assert.Equal(t, "pad  ", columnString("pad", 5))
	assert.Equal(t, "Epic - Pr...", columnString("Epic - Project 1", 12))
	assert.Equal(t, "...", columnString("truncated", 3))
}

func TestHomePageDraw(t *testing.T) {
	db, _, _ := seededDB(t)
	page := &HomePage{DB: db}

	lines, err := page.Draw()
	require.NoError(t, err)

	assert.Equal(t, "----------------------------- EPICS -----------------------------", lines[0])
	assert.Equal(t, "     id     |               name               |      status      ", lines[1])
	assert.Equal(t, "1           | Epic - Project 1                 | IN PROGRESS     ", lines[2])
	assert.Equal(t, "[q] quit | [c] create epic | [:id:] navigate to epic", lines[len(lines)-1])
}

func TestHomePageHandleInput(t *testing.T) {
	db, epicID, _ := seededDB(t)
	page := &HomePage{DB: db}

	action, err := page.HandleInput("q")
	require.NoError(t, err)
	assert.Equal(t, Action{Kind: ActionExit}, action)

	action, err = page.HandleInput("c")
	require.NoError(t, err)
	assert.Equal(t, Action{Kind: ActionCreateEpic}, action)

	action, err = page.HandleInput("1")
	require.NoError(t, err)
	assert.Equal(t, Action{Kind: ActionOpenEpic, ID: epicID}, action)

	for _, input := range []string{"", "x", "99", "-1"} {
		action, err = page.HandleInput(input)
		require.NoError(t, err)
		assert.Equal(t, Action{}, action, "input %q", input)
	}
}

func TestEpicDetailDraw(t *testing.T) {
	db, epicID, _ := seededDB(t)
	page := &EpicDetail{EpicID: epicID, DB: db}

	lines, err := page.Draw()
	require.NoError(t, err)

	assert.Equal(t, "------------------------------ EPIC ------------------------------", lines[0])
	assert.Equal(t, "1     | Epic - Pr... | This is Project 1 for th... | IN PROGRESS ", lines[2])
	assert.Equal(t, "2           | Story - Project 1 Solution       | CLOSED          ", lines[6])
	assert.Equal(t,
		"[p] previous | [u] update epic | [d] delete epic | [c] create story | [:id:] navigate to story",
		lines[len(lines)-1])
}

func TestEpicDetailDrawMissingEpic(t *testing.T) {
	db, _, _ := seededDB(t)
	page := &EpicDetail{EpicID: 99, DB: db}

	_, err := page.Draw()
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEpicDetailHandleInput(t *testing.T) {
	db, epicID, storyID := seededDB(t)
	page := &EpicDetail{EpicID: epicID, DB: db}

	cases := []struct {
		input string
		want  Action
	}{
		{"p", Action{Kind: ActionBack}},
		{"u", Action{Kind: ActionUpdateEpicStatus, ID: epicID}},
		{"d", Action{Kind: ActionDeleteEpic, ID: epicID}},
		{"c", Action{Kind: ActionCreateStory, ID: epicID}},
		{"2", Action{Kind: ActionOpenStory, ID: storyID}},
		{"99", Action{}},
		{"junk", Action{}},
	}
	for _, tc := range cases {
		action, err := page.HandleInput(tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.want, action, "input %q", tc.input)
	}
}

func TestStoryDetailDraw(t *testing.T) {
	db, _, storyID := seededDB(t)
	page := &StoryDetail{StoryID: storyID, DB: db}

	lines, err := page.Draw()
	require.NoError(t, err)

	assert.Equal(t, "------------------------------ STORY ------------------------------", lines[0])
	assert.Equal(t, "2     | Story - P... | This is Task 1 for the f... | CLOSED       ", lines[2])
	assert.Equal(t, "[p] previous | [u] update story | [d] delete story", lines[len(lines)-1])
}

func TestStoryDetailHandleInput(t *testing.T) {
	db, _, storyID := seededDB(t)
	page := &StoryDetail{StoryID: storyID, DB: db}

	cases := []struct {
		input string
		want  Action
	}{
		{"p", Action{Kind: ActionBack}},
		{"u", Action{Kind: ActionUpdateStoryStatus, ID: storyID}},
		{"d", Action{Kind: ActionDeleteStory, ID: storyID}},
		{"anything", Action{}},
	}
	for _, tc := range cases {
		action, err := page.HandleInput(tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.want, action, "input %q", tc.input)
	}
}
