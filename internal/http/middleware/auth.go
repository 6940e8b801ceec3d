package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/idrsdev/agile-task/common/logger"
	"github.com/idrsdev/agile-task/internal/http/dto"
	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/token"
)

const callerIDKey = "caller_id"

// RequirementKind selects how a route's role requirement is evaluated.
type RequirementKind int

const (
	// AnyAuthenticated admits every caller with a valid token.
	AnyAuthenticated RequirementKind = iota
	// AnyRole admits callers holding at least one of Roles.
	AnyRole
)

type RoleRequirement struct {
	Kind  RequirementKind
	Roles []model.RoleName
}

func Authenticated() RoleRequirement {
	return RoleRequirement{Kind: AnyAuthenticated}
}

func RequireAnyRole(roles ...model.RoleName) RoleRequirement {
	return RoleRequirement{Kind: AnyRole, Roles: roles}
}

// RoleResolver loads the roles a user holds.
type RoleResolver interface {
	RolesFor(ctx context.Context, userID int64) ([]model.Role, error)
}

// Authenticate validates the bearer token and stores the caller's user ID.
// It never touches the database.
func Authenticate(verifier token.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			slog.DebugContext(c.Request.Context(), "rejected bearer token", "error", err)
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(callerIDKey, userID)
		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{UserID: &userID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Authorize enforces req for an authenticated caller. Must run after Authenticate.
func Authorize(req RoleRequirement, resolver RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CallerID(c)
		if !ok {
			abortUnauthorized(c, "not authenticated")
			return
		}

		switch req.Kind {
		case AnyAuthenticated:
			c.Next()
			return
		case AnyRole:
			ctx := c.Request.Context()
			roles, err := resolver.RolesFor(ctx, userID)
			if err != nil {
				slog.ErrorContext(ctx, "failed to resolve caller roles", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewError(http.StatusInternalServerError, dto.CodeInternal, "internal server error"))
				return
			}
			if !model.HasAnyRole(roles, req.Roles...) {
				c.AbortWithStatusJSON(http.StatusForbidden,
					dto.NewError(http.StatusForbidden, dto.CodeForbidden, "insufficient role"))
				return
			}
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewError(http.StatusForbidden, dto.CodeForbidden, "insufficient role"))
		}
	}
}

// CallerID returns the user ID set by Authenticate.
func CallerID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(callerIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := v.(int64)
	return userID, ok
}

func bearerToken(header string) (string, bool) {
	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(http.StatusUnauthorized, dto.CodeUnauthorized, message))
}
