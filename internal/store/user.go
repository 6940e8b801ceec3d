package store

import (
	"context"

	"github.com/idrsdev/agile-task/core/db/sqlc"
	"github.com/idrsdev/agile-task/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByWorkOSID(ctx context.Context, workosID string) (*model.User, error) {
	row, err := s.queries.GetUserByWorkOSID(ctx, &workosID)
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	var passwordHash *string
	if user.PasswordHash != "" {
		passwordHash = &user.PasswordHash
	}
	row, err := s.queries.CreateUser(ctx, sqlc.CreateUserParams{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: passwordHash,
		IsActive:     user.IsActive,
		WorkosID:     user.WorkOSID,
	})
	if err != nil {
		return mapErr(err)
	}
	*user = *toUserModel(row)
	return nil
}

func (s *userStore) UpdateName(ctx context.Context, id int64, name string) (*model.User, error) {
	row, err := s.queries.UpdateUserName(ctx, sqlc.UpdateUserNameParams{ID: id, Name: name})
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) LinkWorkOS(ctx context.Context, id int64, workosID string) (*model.User, error) {
	row, err := s.queries.LinkUserWorkOSID(ctx, sqlc.LinkUserWorkOSIDParams{ID: id, WorkosID: &workosID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

func toUserModel(row sqlc.User) *model.User {
	u := &model.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		IsActive:  row.IsActive,
		WorkOSID:  row.WorkosID,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
	if row.PasswordHash != nil {
		u.PasswordHash = *row.PasswordHash
	}
	return u
}

func toUserModels(rows []sqlc.User) []model.User {
	users := make([]model.User, len(rows))
	for i, row := range rows {
		users[i] = *toUserModel(row)
	}
	return users
}
