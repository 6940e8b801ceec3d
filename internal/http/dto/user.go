package dto

import (
	"time"

	"github.com/idrsdev/agile-task/internal/model"
)

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	Roles     []string  `json:"roles,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponses(users []model.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = *ToUserResponse(&users[i])
	}
	return resp
}

func ToProfileResponse(p *model.UserProfile) *UserResponse {
	resp := ToUserResponse(&p.User)
	resp.Roles = make([]string, len(p.Roles))
	for i, r := range p.Roles {
		resp.Roles[i] = string(r.Name)
	}
	return resp
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,notblank,max=255"`
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin member"`
}

type RoleResponse struct {
	ID   int16  `json:"id"`
	Name string `json:"name"`
}

type ListRolesResponse struct {
	Roles []RoleResponse `json:"roles"`
}

func ToListRolesResponse(roles []model.Role) ListRolesResponse {
	resp := ListRolesResponse{Roles: make([]RoleResponse, len(roles))}
	for i, r := range roles {
		resp.Roles[i] = RoleResponse{ID: r.ID, Name: string(r.Name)}
	}
	return resp
}
