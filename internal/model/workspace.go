package model

import "time"

type Workspace struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	CreatorID int64     `json:"creator_id,string"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCreator reports whether userID owns the workspace.
func (w Workspace) IsCreator(userID int64) bool {
	return w.CreatorID == userID
}

// WorkspaceDetail is a workspace with its resolved owner and members.
// Owner is nil only when the creator row is missing.
type WorkspaceDetail struct {
	Workspace Workspace `json:"workspace"`
	Owner     *User     `json:"owner"`
	Members   []User    `json:"members"`
}

// WorkspaceUpdate holds the optional fields of a partial update.
type WorkspaceUpdate struct {
	Name *string
}

// MembershipChange confirms an add or remove member operation.
type MembershipChange struct {
	WorkspaceID int64  `json:"workspace_id,string"`
	MemberID    int64  `json:"member_id,string"`
	Message     string `json:"message"`
}
