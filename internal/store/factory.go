package store

import (
	"github.com/idrsdev/agile-task/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Roles() RoleStore {
	return newRoleStore(s.queries)
}

func (s *Stores) Tokens() TokenStore {
	return newTokenStore(s.queries)
}

func (s *Stores) Workspaces() WorkspaceStore {
	return newWorkspaceStore(s.queries)
}

func (s *Stores) WorkspaceEventLogs() WorkspaceEventLogStore {
	return newWorkspaceEventLogStore(s.queries)
}
