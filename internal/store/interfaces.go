package store

import (
	"context"
	"errors"

	"github.com/idrsdev/agile-task/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a write violates a unique constraint
var ErrDuplicate = errors.New("duplicate")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByWorkOSID(ctx context.Context, workosID string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateName(ctx context.Context, id int64, name string) (*model.User, error)
	LinkWorkOS(ctx context.Context, id int64, workosID string) (*model.User, error)
}

// RoleStore defines the contract for the role registry and user_role links
type RoleStore interface {
	List(ctx context.Context) ([]model.Role, error)
	GetByName(ctx context.Context, name model.RoleName) (*model.Role, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Role, error)
	Assign(ctx context.Context, userID int64, roleID int16) error
	// Revoke reports whether the user held the role.
	Revoke(ctx context.Context, userID int64, roleID int16) (bool, error)
}

// TokenStore defines the contract for refresh token data access
type TokenStore interface {
	// Upsert replaces the user's current token.
	Upsert(ctx context.Context, token *model.Token) error
	GetByHash(ctx context.Context, hash string) (*model.Token, error)
	DeleteByUser(ctx context.Context, userID int64) error
}

// WorkspaceStore defines the contract for workspace and membership data access.
// List methods return the requested page and the total number of matches.
type WorkspaceStore interface {
	GetByID(ctx context.Context, id int64) (*model.Workspace, error)
	Create(ctx context.Context, ws *model.Workspace) error
	UpdateName(ctx context.Context, id int64, name string) (*model.Workspace, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page model.PageRequest) ([]model.Workspace, int64, error)
	ListByCreator(ctx context.Context, creatorID int64, page model.PageRequest) ([]model.Workspace, int64, error)
	ListByMember(ctx context.Context, userID int64, page model.PageRequest) ([]model.Workspace, int64, error)

	// AddMember reports false when the user was already a member.
	AddMember(ctx context.Context, workspaceID, userID int64) (bool, error)
	// RemoveMember reports false when the user was not a member.
	RemoveMember(ctx context.Context, workspaceID, userID int64) (bool, error)
	IsMember(ctx context.Context, workspaceID, userID int64) (bool, error)
	ListMembers(ctx context.Context, workspaceID int64) ([]model.User, error)
}

// WorkspaceEventLogStore defines the contract for the workspace audit trail
type WorkspaceEventLogStore interface {
	// Create reports false when a log with the same message ID already exists.
	Create(ctx context.Context, log *model.WorkspaceEventLog) (bool, error)
	ListByWorkspace(ctx context.Context, workspaceID int64, limit int32) ([]model.WorkspaceEventLog, error)
}
