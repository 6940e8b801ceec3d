package store

import (
	"context"

	"github.com/idrsdev/agile-task/core/db/sqlc"
	"github.com/idrsdev/agile-task/internal/model"
)

type roleStore struct {
	queries *sqlc.Queries
}

func newRoleStore(queries *sqlc.Queries) RoleStore {
	return &roleStore{queries: queries}
}

func (s *roleStore) List(ctx context.Context) ([]model.Role, error) {
	rows, err := s.queries.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	return toRoleModels(rows), nil
}

func (s *roleStore) GetByName(ctx context.Context, name model.RoleName) (*model.Role, error) {
	row, err := s.queries.GetRoleByName(ctx, string(name))
	if err != nil {
		return nil, mapErr(err)
	}
	role := toRoleModel(row)
	return &role, nil
}

func (s *roleStore) ListForUser(ctx context.Context, userID int64) ([]model.Role, error) {
	rows, err := s.queries.ListUserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toRoleModels(rows), nil
}

func (s *roleStore) Assign(ctx context.Context, userID int64, roleID int16) error {
	return s.queries.AssignUserRole(ctx, sqlc.AssignUserRoleParams{UserID: userID, RoleID: roleID})
}

func (s *roleStore) Revoke(ctx context.Context, userID int64, roleID int16) (bool, error) {
	n, err := s.queries.RevokeUserRole(ctx, sqlc.RevokeUserRoleParams{UserID: userID, RoleID: roleID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func toRoleModel(row sqlc.Role) model.Role {
	return model.Role{ID: row.ID, Name: model.RoleName(row.Name)}
}

func toRoleModels(rows []sqlc.Role) []model.Role {
	roles := make([]model.Role, len(rows))
	for i, row := range rows {
		roles[i] = toRoleModel(row)
	}
	return roles
}
