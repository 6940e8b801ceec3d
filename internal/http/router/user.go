package router

import (
	"net/http"

	"github.com/idrsdev/agile-task/internal/http/handler"
	"github.com/idrsdev/agile-task/internal/http/middleware"
	"github.com/idrsdev/agile-task/internal/model"
)

func UserRoutes(h *handler.UserHandler) []Route {
	admin := middleware.RequireAnyRole(model.RoleAdmin)

	return []Route{
		{Method: http.MethodGet, Path: "/users/me", Handler: h.Me, Requirement: middleware.Authenticated()},
		{Method: http.MethodPatch, Path: "/users/me", Handler: h.UpdateMe, Requirement: middleware.Authenticated()},
		{Method: http.MethodGet, Path: "/roles", Handler: h.ListRoles, Requirement: middleware.Authenticated()},
		{Method: http.MethodPost, Path: "/admin/users/:id/roles", Handler: h.AssignRole, Requirement: admin},
		{Method: http.MethodDelete, Path: "/admin/users/:id/roles/:role", Handler: h.RevokeRole, Requirement: admin},
	}
}
