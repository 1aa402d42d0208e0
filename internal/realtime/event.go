// Package realtime carries domain events published after successful writes.
package realtime

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventNoteCreated   EventType = "note.created"
	EventNoteUpdated   EventType = "note.updated"
	EventNoteDeleted   EventType = "note.deleted"
	EventQuizCreated   EventType = "quiz.created"
	EventQuizSubmitted EventType = "quiz.submitted"
)

type Event struct {
	ID       uuid.UUID      `json:"id"`
	Type     EventType      `json:"type"`
	UserID   uuid.UUID      `json:"userId"`
	EntityID uuid.UUID      `json:"entityId"`
	Data     map[string]any `json:"data,omitempty"`
	At       time.Time      `json:"at"`
}

func NewEvent(t EventType, userID, entityID uuid.UUID, data map[string]any) Event {
	return Event{
		ID:       uuid.New(),
		Type:     t,
		UserID:   userID,
		EntityID: entityID,
		Data:     data,
		At:       time.Now().UTC(),
	}
}
