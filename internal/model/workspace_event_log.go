package model

import (
	"encoding/json"
	"time"
)

type WorkspaceEventType string

const (
	WorkspaceEventCreated       WorkspaceEventType = "workspace.created"
	WorkspaceEventUpdated       WorkspaceEventType = "workspace.updated"
	WorkspaceEventDeleted       WorkspaceEventType = "workspace.deleted"
	WorkspaceEventMemberAdded   WorkspaceEventType = "workspace.member_added"
	WorkspaceEventMemberRemoved WorkspaceEventType = "workspace.member_removed"
)

func (t WorkspaceEventType) IsValid() bool {
	switch t {
	case WorkspaceEventCreated, WorkspaceEventUpdated, WorkspaceEventDeleted,
		WorkspaceEventMemberAdded, WorkspaceEventMemberRemoved:
		return true
	}
	return false
}

// WorkspaceEvent is a domain event published after a successful write.
type WorkspaceEvent struct {
	Type          WorkspaceEventType
	WorkspaceID   int64
	ActorID       int64
	SubjectUserID *int64
	Metadata      map[string]string
}

type WorkspaceEventLog struct {
	ID            int64              `json:"id,string"`
	WorkspaceID   int64              `json:"workspace_id,string"`
	ActorID       int64              `json:"actor_id,string"`
	SubjectUserID *int64             `json:"subject_user_id,omitempty,string"`
	EventType     WorkspaceEventType `json:"event_type"`
	MessageID     string             `json:"message_id"`
	Metadata      json.RawMessage    `json:"metadata,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}
