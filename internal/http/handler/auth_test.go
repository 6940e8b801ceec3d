package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/idrsdev/agile-task/internal/http/dto"
	"github.com/idrsdev/agile-task/internal/http/handler"
	"github.com/idrsdev/agile-task/internal/http/router"
	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/service"
)

var _ = Describe("AuthHandler", func() {
	var (
		engine *gin.Engine
		svc    *mockAuthService
		pair   *model.TokenPair
	)

	BeforeEach(func() {
		svc = &mockAuthService{}
		engine = newEngine(router.AuthRoutes(handler.NewAuthHandler(svc, false)), &mockUserService{})
		pair = &model.TokenPair{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenType:    "Bearer",
			ExpiresAt:    time.Now().Add(15 * time.Minute),
		}
	})

	Describe("POST /auth/register", func() {
		It("returns 201 with the user and tokens", func() {
			svc.registerFn = func(_ context.Context, name, email, _ string) (*model.User, *model.TokenPair, error) {
				return &model.User{ID: 42, Name: name, Email: email}, pair, nil
			}

			w := perform(engine, http.MethodPost, "/api/v1/auth/register",
				`{"name":"Ada","email":"ada@example.com","password":"correct-horse"}`, "")

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp dto.AuthResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.User.ID).To(Equal(int64(42)))
			Expect(resp.Tokens.AccessToken).To(Equal("access"))
			Expect(w.Body.String()).NotTo(ContainSubstring("password"))
		})

		It("rejects a short password", func() {
			w := perform(engine, http.MethodPost, "/api/v1/auth/register",
				`{"name":"Ada","email":"ada@example.com","password":"short"}`, "")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps a taken email to 409", func() {
			svc.registerFn = func(_ context.Context, _, _, _ string) (*model.User, *model.TokenPair, error) {
				return nil, nil, service.ErrEmailTaken
			}

			w := perform(engine, http.MethodPost, "/api/v1/auth/register",
				`{"name":"Ada","email":"ada@example.com","password":"correct-horse"}`, "")

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(decodeError(w).Code).To(Equal(dto.CodeEmailTaken))
		})
	})

	Describe("POST /auth/login", func() {
		It("maps bad credentials to 401", func() {
			svc.loginFn = func(_ context.Context, _, _ string) (*model.User, *model.TokenPair, error) {
				return nil, nil, service.ErrInvalidCredentials
			}

			w := perform(engine, http.MethodPost, "/api/v1/auth/login",
				`{"email":"ada@example.com","password":"wrong"}`, "")

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(decodeError(w).Code).To(Equal(dto.CodeInvalidCredentials))
		})
	})

	Describe("POST /auth/refresh", func() {
		It("returns a rotated pair", func() {
			svc.refreshFn = func(_ context.Context, refreshToken string) (*model.TokenPair, error) {
				Expect(refreshToken).To(Equal("old"))
				return pair, nil
			}

			w := perform(engine, http.MethodPost, "/api/v1/auth/refresh", `{"refresh_token":"old"}`, "")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"refresh_token":"refresh"`))
		})

		It("maps an unknown token to 401", func() {
			svc.refreshFn = func(_ context.Context, _ string) (*model.TokenPair, error) {
				return nil, service.ErrInvalidRefreshToken
			}

			w := perform(engine, http.MethodPost, "/api/v1/auth/refresh", `{"refresh_token":"old"}`, "")

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(decodeError(w).Code).To(Equal(dto.CodeInvalidRefreshToken))
		})
	})

	Describe("POST /auth/logout", func() {
		It("requires a bearer token", func() {
			w := perform(engine, http.MethodPost, "/api/v1/auth/logout", "", "")

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("logs the caller out", func() {
			var got int64
			svc.logoutFn = func(_ context.Context, userID int64) error {
				got = userID
				return nil
			}

			w := perform(engine, http.MethodPost, "/api/v1/auth/logout", "", "user-7")

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(got).To(Equal(int64(7)))
		})
	})

	Describe("SSO", func() {
		It("returns 404 when sso is not configured", func() {
			svc.authURLFn = func(_ string) (string, error) {
				return "", service.ErrSSODisabled
			}

			w := perform(engine, http.MethodGet, "/api/v1/auth/sso/url", "", "")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decodeError(w).Code).To(Equal(dto.CodeSSODisabled))
		})

		It("sets a state cookie and returns the url", func() {
			svc.authURLFn = func(state string) (string, error) {
				return "https://auth.example.com/?state=" + state, nil
			}

			w := perform(engine, http.MethodGet, "/api/v1/auth/sso/url", "", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp dto.SSOURLResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.State).NotTo(BeEmpty())
			Expect(resp.AuthorizationURL).To(HaveSuffix(resp.State))
			Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring("HttpOnly"))
		})

		It("rejects a callback whose state does not match the cookie", func() {
			w := perform(engine, http.MethodGet, "/api/v1/auth/sso/callback?code=abc&state=other", "", "")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("completes sign-in when the state matches", func() {
			svc.handleCallbackFn = func(_ context.Context, code string) (*model.User, *model.TokenPair, error) {
				Expect(code).To(Equal("abc"))
				return &model.User{ID: 9, Name: "Sso"}, pair, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/sso/callback?code=abc&state=s1", nil)
			req.AddCookie(&http.Cookie{Name: "agile_task_oauth_state", Value: "s1"})
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"access_token":"access"`))
		})
	})
})
