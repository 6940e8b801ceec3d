package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/idrsdev/agile-task/internal/http/dto"
	"github.com/idrsdev/agile-task/internal/http/middleware"
	"github.com/idrsdev/agile-task/internal/service"
)

// respondError maps service errors onto status codes. Anything unrecognised
// is logged and reported as a 500 without leaking details.
func respondError(c *gin.Context, err error, action string) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "failed to "+action, "error", err)
		abort(c, status, code, "failed to "+action)
		return
	}
	abort(c, status, code, err.Error())
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, dto.CodeValidation
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.CodeInvalidCredentials
	case errors.Is(err, service.ErrInvalidRefreshToken):
		return http.StatusUnauthorized, dto.CodeInvalidRefreshToken
	case errors.Is(err, service.ErrInvalidCode):
		return http.StatusUnauthorized, dto.CodeInvalidCode
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, dto.CodeForbidden
	case errors.Is(err, service.ErrWorkspaceNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRoleNotFound):
		return http.StatusNotFound, dto.CodeNotFound
	case errors.Is(err, service.ErrNotMember):
		return http.StatusNotFound, dto.CodeNotMember
	case errors.Is(err, service.ErrAlreadyMember):
		return http.StatusConflict, dto.CodeAlreadyMember
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, dto.CodeEmailTaken
	case errors.Is(err, service.ErrSSODisabled):
		return http.StatusNotFound, dto.CodeSSODisabled
	default:
		return http.StatusInternalServerError, dto.CodeInternal
	}
}

func respondBindError(c *gin.Context, err error) {
	abort(c, http.StatusBadRequest, dto.CodeValidation, describeBindError(err))
}

func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return "invalid request: " + strings.Join(msgs, "; ")
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewError(status, code, message))
}

// callerID reads the authenticated user. The route table guarantees
// Authenticate ran, so a miss is a wiring bug.
func callerID(c *gin.Context) (int64, bool) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		abort(c, http.StatusUnauthorized, dto.CodeUnauthorized, "not authenticated")
	}
	return userID, ok
}
