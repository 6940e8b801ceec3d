package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/store"
)

type UserService interface {
	Me(ctx context.Context, userID int64) (*model.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, name string) (*model.User, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
	RolesFor(ctx context.Context, userID int64) ([]model.Role, error)
	AssignRole(ctx context.Context, userID int64, role model.RoleName) error
	RevokeRole(ctx context.Context, userID int64, role model.RoleName) error
}

type userService struct {
	userStore store.UserStore
	roleStore store.RoleStore
}

func NewUserService(userStore store.UserStore, roleStore store.RoleStore) UserService {
	return &userService{
		userStore: userStore,
		roleStore: roleStore,
	}
}

func (s *userService) Me(ctx context.Context, userID int64) (*model.UserProfile, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	roles, err := s.roleStore.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing user roles: %w", err)
	}

	return &model.UserProfile{User: *user, Roles: roles}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, name string) (*model.User, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.UpdateName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		slog.ErrorContext(ctx, "failed to update user", "error", err)
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user, nil
}

func (s *userService) ListRoles(ctx context.Context) ([]model.Role, error) {
	roles, err := s.roleStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	return roles, nil
}

func (s *userService) RolesFor(ctx context.Context, userID int64) ([]model.Role, error) {
	roles, err := s.roleStore.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing user roles: %w", err)
	}
	return roles, nil
}

func (s *userService) AssignRole(ctx context.Context, userID int64, roleName model.RoleName) error {
	role, err := s.getRole(ctx, roleName)
	if err != nil {
		return err
	}
	if _, err := s.getUser(ctx, userID); err != nil {
		return err
	}

	if err := s.roleStore.Assign(ctx, userID, role.ID); err != nil {
		return fmt.Errorf("assigning role: %w", err)
	}

	slog.InfoContext(ctx, "role assigned", "target_user_id", userID, "role", role.Name)
	return nil
}

// RevokeRole is idempotent: revoking a role the user does not hold succeeds.
func (s *userService) RevokeRole(ctx context.Context, userID int64, roleName model.RoleName) error {
	role, err := s.getRole(ctx, roleName)
	if err != nil {
		return err
	}
	if _, err := s.getUser(ctx, userID); err != nil {
		return err
	}

	revoked, err := s.roleStore.Revoke(ctx, userID, role.ID)
	if err != nil {
		return fmt.Errorf("revoking role: %w", err)
	}
	if revoked {
		slog.InfoContext(ctx, "role revoked", "target_user_id", userID, "role", role.Name)
	}
	return nil
}

func (s *userService) getUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *userService) getRole(ctx context.Context, name model.RoleName) (*model.Role, error) {
	if !name.IsValid() {
		return nil, ErrRoleNotFound
	}
	role, err := s.roleStore.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("getting role: %w", err)
	}
	return role, nil
}
