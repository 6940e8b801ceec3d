package handler

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/idrsdev/agile-task/internal/http/dto"
	"github.com/idrsdev/agile-task/internal/service"
)

const stateCookieName = "agile_task_oauth_state"

type AuthHandler struct {
	authService  service.AuthService
	isProduction bool
}

func NewAuthHandler(authService service.AuthService, isProduction bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		isProduction: isProduction,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, pair, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err, "register")
		return
	}
	c.JSON(http.StatusCreated, dto.AuthResponse{User: dto.ToUserResponse(user), Tokens: pair})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, pair, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "log in")
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{User: dto.ToUserResponse(user), Tokens: pair})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err, "refresh token")
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{Tokens: pair})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err, "log out")
		return
	}
	c.Status(http.StatusNoContent)
}

// SSOURL starts the hosted sign-in flow. The state is echoed back in a
// cookie and checked on callback.
func (h *AuthHandler) SSOURL(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		respondError(c, err, "initiate sso")
		return
	}

	authURL, err := h.authService.GetAuthorizationURL(state)
	if err != nil {
		respondError(c, err, "initiate sso")
		return
	}

	c.SetCookie(stateCookieName, state, 600, "/", "", h.isProduction, true)
	c.JSON(http.StatusOK, dto.SSOURLResponse{AuthorizationURL: authURL, State: state})
}

func (h *AuthHandler) SSOCallback(c *gin.Context) {
	ctx := c.Request.Context()

	if errParam := c.Query("error"); errParam != "" {
		slog.WarnContext(ctx, "sso provider returned error",
			"error", errParam,
			"description", c.Query("error_description"),
		)
		abort(c, http.StatusUnauthorized, dto.CodeInvalidCode, "sso error: "+errParam)
		return
	}

	state := c.Query("state")
	storedState, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || state != storedState {
		slog.WarnContext(ctx, "sso state mismatch")
		abort(c, http.StatusBadRequest, dto.CodeValidation, "invalid state")
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", h.isProduction, true)

	code := c.Query("code")
	if code == "" {
		abort(c, http.StatusBadRequest, dto.CodeValidation, "missing code")
		return
	}

	user, pair, err := h.authService.HandleCallback(ctx, code)
	if err != nil {
		respondError(c, err, "complete sso sign-in")
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{User: dto.ToUserResponse(user), Tokens: pair})
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
