package router

import (
	"net/http"

	"github.com/idrsdev/agile-task/internal/http/handler"
	"github.com/idrsdev/agile-task/internal/http/middleware"
	"github.com/idrsdev/agile-task/internal/model"
)

func WorkspaceRoutes(h *handler.WorkspaceHandler) []Route {
	authed := middleware.Authenticated()

	return []Route{
		{Method: http.MethodGet, Path: "/workspaces", Handler: h.ListAll, Requirement: middleware.RequireAnyRole(model.RoleAdmin)},
		{Method: http.MethodGet, Path: "/workspaces/me", Handler: h.ListMine, Requirement: authed},
		{Method: http.MethodGet, Path: "/workspaces/member", Handler: h.ListMemberOf, Requirement: authed},
		{Method: http.MethodPatch, Path: "/workspaces/add-member", Handler: h.AddMember, Requirement: authed},
		{Method: http.MethodPatch, Path: "/workspaces/remove-member", Handler: h.RemoveMember, Requirement: authed},
		{Method: http.MethodPost, Path: "/workspaces", Handler: h.Create, Requirement: authed},
		{Method: http.MethodGet, Path: "/workspaces/:id", Handler: h.Get, Requirement: authed},
		{Method: http.MethodGet, Path: "/workspaces/:id/members", Handler: h.ListMembers, Requirement: authed},
		{Method: http.MethodGet, Path: "/workspaces/:id/activity", Handler: h.ListActivity, Requirement: authed},
		{Method: http.MethodPatch, Path: "/workspaces/:id", Handler: h.Update, Requirement: authed},
		{Method: http.MethodDelete, Path: "/workspaces/:id", Handler: h.Delete, Requirement: authed},
	}
}
