package router

import (
	"net/http"

	"github.com/idrsdev/agile-task/internal/http/handler"
	"github.com/idrsdev/agile-task/internal/http/middleware"
)

func AuthRoutes(h *handler.AuthHandler) []Route {
	return []Route{
		{Method: http.MethodPost, Path: "/auth/register", Handler: h.Register, Public: true, RateLimited: true},
		{Method: http.MethodPost, Path: "/auth/login", Handler: h.Login, Public: true, RateLimited: true},
		{Method: http.MethodPost, Path: "/auth/refresh", Handler: h.Refresh, Public: true, RateLimited: true},
		{Method: http.MethodPost, Path: "/auth/logout", Handler: h.Logout, Requirement: middleware.Authenticated()},
		{Method: http.MethodGet, Path: "/auth/sso/url", Handler: h.SSOURL, Public: true},
		{Method: http.MethodGet, Path: "/auth/sso/callback", Handler: h.SSOCallback, Public: true},
	}
}
