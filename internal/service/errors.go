package service

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrForbidden           = errors.New("forbidden")
	ErrWorkspaceNotFound   = errors.New("workspace not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrRoleNotFound        = errors.New("role not found")
	ErrAlreadyMember       = errors.New("user is already a member of this workspace")
	ErrNotMember           = errors.New("user is not a member of this workspace")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrInvalidCode         = errors.New("invalid authorization code")
	ErrSSODisabled         = errors.New("sso is not configured")
)
