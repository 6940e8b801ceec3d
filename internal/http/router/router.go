package router

import (
	"github.com/gin-gonic/gin"

	"github.com/idrsdev/agile-task/internal/http/handler"
	"github.com/idrsdev/agile-task/internal/http/middleware"
	"github.com/idrsdev/agile-task/internal/service"
	"github.com/idrsdev/agile-task/internal/token"
)

// Route is one row of the route table. Public routes skip authentication;
// every other route runs Authenticate and then Authorize(Requirement).
type Route struct {
	Method      string
	Path        string
	Handler     gin.HandlerFunc
	Requirement middleware.RoleRequirement
	Public      bool
	RateLimited bool
}

type RouterConfig struct {
	IsProduction bool
	Verifier     token.Verifier
	AuthLimiter  *middleware.IPRateLimiter
	DB           handler.Pinger
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", handler.NewHealthHandler(cfg.DB).Check)

	authHandler := handler.NewAuthHandler(services.Auth(), cfg.IsProduction)
	userHandler := handler.NewUserHandler(services.Users())
	workspaceHandler := handler.NewWorkspaceHandler(services.Workspaces())

	var routes []Route
	routes = append(routes, AuthRoutes(authHandler)...)
	routes = append(routes, UserRoutes(userHandler)...)
	routes = append(routes, WorkspaceRoutes(workspaceHandler)...)

	Register(router.Group("/api/v1"), routes, services.Users(), cfg)
}

// Register installs routes in table order so literal segments win over
// :id params registered after them.
func Register(rg *gin.RouterGroup, routes []Route, resolver middleware.RoleResolver, cfg RouterConfig) {
	authenticate := middleware.Authenticate(cfg.Verifier)

	for _, r := range routes {
		var chain []gin.HandlerFunc
		if r.RateLimited && cfg.AuthLimiter != nil {
			chain = append(chain, middleware.RateLimit(cfg.AuthLimiter))
		}
		if !r.Public {
			chain = append(chain, authenticate, middleware.Authorize(r.Requirement, resolver))
		}
		chain = append(chain, r.Handler)
		rg.Handle(r.Method, r.Path, chain...)
	}
}
