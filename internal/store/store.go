// Package store persists Ironyy's state — epics, stories, and the account
// credential record — as a single JSON file. The auth package treats the
// account record as opaque; this package only serializes it.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/ironyy/ironyy/auth"
	"github.com/ironyy/ironyy/internal/models"
)

// ErrNotFound is returned when an epic or story id does not exist.
var ErrNotFound = errors.New("record not found")

// State is the full persisted database content. Item ids are sequential and
// never reused; LastItemID carries the high-water mark across restarts.
type State struct {
	LastItemID uint32                   `json:"last_item_id"`
	Epics      map[uint32]*models.Epic  `json:"epics"`
	Stories    map[uint32]*models.Story `json:"stories"`
	Account    *auth.Account            `json:"account,omitempty"`
}

func emptyState() State {
	return State{
		Epics:   make(map[uint32]*models.Epic),
		Stories: make(map[uint32]*models.Story),
	}
}

// Database is the JSON-backed store. Every mutating method persists the new
// state to disk before returning. A single writer is assumed; the mutex only
// guards incidental concurrent reads.
type Database struct {
	path string
	log  *zap.Logger

	mu    sync.Mutex
	state State
}

// Open loads the database at path. A missing file yields a fresh empty
// state; a file that exists but cannot be parsed is surfaced as an error
// rather than silently discarded.
func Open(path string, log *zap.Logger) (*Database, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db := &Database{path: path, log: log, state: emptyState()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("creating new database", zap.String("path", path))
			return db, nil
		}
		return nil, fmt.Errorf("read database: %w", err)
	}

	if err := json.Unmarshal(data, &db.state); err != nil {
		return nil, fmt.Errorf("parse database %s: %w", path, err)
	}
	if db.state.Epics == nil {
		db.state.Epics = make(map[uint32]*models.Epic)
	}
	if db.state.Stories == nil {
		db.state.Stories = make(map[uint32]*models.Story)
	}

	log.Info("database loaded",
		zap.String("path", path),
		zap.Int("epics", len(db.state.Epics)),
		zap.Int("stories", len(db.state.Stories)),
	)
	return db, nil
}

// persist writes the current state; callers hold the mutex.
func (db *Database) persist() error {
	data, err := json.MarshalIndent(&db.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode database: %w", err)
	}
	if err := os.WriteFile(db.path, data, 0o600); err != nil {
		return fmt.Errorf("write database: %w", err)
	}
	return nil
}

// Read returns a shallow snapshot of the current state.
func (db *Database) Read() State {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.state
}

// CreateEpic stores epic and returns its new id.
func (db *Database) CreateEpic(epic *models.Epic) (uint32, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.state.LastItemID++
	id := db.state.LastItemID
	db.state.Epics[id] = epic

	if err := db.persist(); err != nil {
		delete(db.state.Epics, id)
		db.state.LastItemID--
		return 0, err
	}
	db.log.Debug("epic created", zap.Uint32("id", id))
	return id, nil
}

// CreateStory stores story under the given epic and returns its new id.
func (db *Database) CreateStory(epicID uint32, story *models.Story) (uint32, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	epic, ok := db.state.Epics[epicID]
	if !ok {
		return 0, fmt.Errorf("epic %d: %w", epicID, ErrNotFound)
	}

	db.state.LastItemID++
	id := db.state.LastItemID
	db.state.Stories[id] = story
	epic.StoryIDs = append(epic.StoryIDs, id)

	if err := db.persist(); err != nil {
		delete(db.state.Stories, id)
		epic.StoryIDs = epic.StoryIDs[:len(epic.StoryIDs)-1]
		db.state.LastItemID--
		return 0, err
	}
	db.log.Debug("story created", zap.Uint32("id", id), zap.Uint32("epic_id", epicID))
	return id, nil
}

// UpdateEpicStatus sets the status of one epic.
func (db *Database) UpdateEpicStatus(id uint32, status models.Status) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	epic, ok := db.state.Epics[id]
	if !ok {
		return fmt.Errorf("epic %d: %w", id, ErrNotFound)
	}
	previous := epic.Status
	epic.Status = status

	if err := db.persist(); err != nil {
		epic.Status = previous
		return err
	}
	return nil
}

// UpdateStoryStatus sets the status of one story.
func (db *Database) UpdateStoryStatus(id uint32, status models.Status) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	story, ok := db.state.Stories[id]
	if !ok {
		return fmt.Errorf("story %d: %w", id, ErrNotFound)
	}
	previous := story.Status
	story.Status = status

	if err := db.persist(); err != nil {
		story.Status = previous
		return err
	}
	return nil
}

// DeleteEpic removes an epic and all of its stories.
func (db *Database) DeleteEpic(id uint32) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	epic, ok := db.state.Epics[id]
	if !ok {
		return fmt.Errorf("epic %d: %w", id, ErrNotFound)
	}

	removed := make(map[uint32]*models.Story, len(epic.StoryIDs))
	for _, storyID := range epic.StoryIDs {
		if story, ok := db.state.Stories[storyID]; ok {
			removed[storyID] = story
			delete(db.state.Stories, storyID)
		}
	}
	delete(db.state.Epics, id)

	if err := db.persist(); err != nil {
		db.state.Epics[id] = epic
		for storyID, story := range removed {
			db.state.Stories[storyID] = story
		}
		return err
	}
	db.log.Debug("epic deleted", zap.Uint32("id", id), zap.Int("stories", len(removed)))
	return nil
}

// DeleteStory removes a story and detaches it from its parent epic.
func (db *Database) DeleteStory(id uint32) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	story, ok := db.state.Stories[id]
	if !ok {
		return fmt.Errorf("story %d: %w", id, ErrNotFound)
	}

	var parent *models.Epic
	var parentIndex int
	for _, epic := range db.state.Epics {
		for i, storyID := range epic.StoryIDs {
			if storyID == id {
				parent = epic
				parentIndex = i
				break
			}
		}
		if parent != nil {
			break
		}
	}

	delete(db.state.Stories, id)
	if parent != nil {
		parent.StoryIDs = append(parent.StoryIDs[:parentIndex], parent.StoryIDs[parentIndex+1:]...)
	}

	if err := db.persist(); err != nil {
		db.state.Stories[id] = story
		if parent != nil {
			parent.StoryIDs = append(parent.StoryIDs, 0)
			copy(parent.StoryIDs[parentIndex+1:], parent.StoryIDs[parentIndex:])
			parent.StoryIDs[parentIndex] = id
		}
		return err
	}
	db.log.Debug("story deleted", zap.Uint32("id", id))
	return nil
}

// Account returns the stored credential record, or nil when no account has
// been created yet.
func (db *Database) Account() *auth.Account {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.state.Account
}

// SetAccount persists the credential record. The record's fields are owned
// by the auth package and stored opaquely.
func (db *Database) SetAccount(acct *auth.Account) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	previous := db.state.Account
	db.state.Account = acct

	if err := db.persist(); err != nil {
		db.state.Account = previous
		return err
	}
	db.log.Debug("account record updated")
	return nil
}
