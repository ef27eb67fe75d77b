// Package models holds the Ironyy project records: epics, their stories, and
// the shared workflow status.
package models

import (
	"encoding/json"
	"fmt"
)

// Status is the workflow state shared by epics and stories.
type Status uint8

const (
	StatusOpen Status = iota
	StatusInProgress
	StatusResolved
	StatusClosed
)

// String returns the console display form.
func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "OPEN"
	case StatusInProgress:
		return "IN PROGRESS"
	case StatusResolved:
		return "RESOLVED"
	case StatusClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// statusNames are the persisted forms, kept stable for database files
// written by earlier versions.
var statusNames = map[Status]string{
	StatusOpen:       "Open",
	StatusInProgress: "InProgress",
	StatusResolved:   "Resolved",
	StatusClosed:     "Closed",
}

// MarshalJSON encodes the status by name rather than by ordinal.
func (s Status) MarshalJSON() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown status %d", uint8(s))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a status name.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for status, candidate := range statusNames {
		if candidate == name {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", name)
}

// Epic groups related stories under one name and description.
type Epic struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	StoryIDs    []uint32 `json:"stories"`
}

// NewEpic returns an open epic with no stories.
func NewEpic(name, description string) *Epic {
	return &Epic{
		Name:        name,
		Description: description,
		Status:      StatusOpen,
		StoryIDs:    []uint32{},
	}
}

// Story is a single unit of work inside an epic.
type Story struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

// NewStory returns an open story.
func NewStory(name, description string) *Story {
	return &Story{
		Name:        name,
		Description: description,
		Status:      StatusOpen,
	}
}
