package dto

import (
	"github.com/idrsdev/agile-task/internal/model"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	User   *UserResponse    `json:"user,omitempty"`
	Tokens *model.TokenPair `json:"tokens"`
}

type SSOURLResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
}
