package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/idrsdev/agile-task/common/logger"
	"github.com/idrsdev/agile-task/core/config"
	"github.com/idrsdev/agile-task/internal/http/middleware"
	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/token"
)

type resolverFunc func(ctx context.Context, userID int64) ([]model.Role, error)

func (f resolverFunc) RolesFor(ctx context.Context, userID int64) ([]model.Role, error) {
	return f(ctx, userID)
}

var _ = Describe("Auth middleware", func() {
	var (
		manager  *token.Manager
		roles    map[int64][]model.Role
		resolver resolverFunc
		calls    int
	)

	authCfg := config.AuthConfig{
		JWTSecret:       "test-secret-test-secret-test-secret",
		Issuer:          "agile-task-test",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}

	BeforeEach(func() {
		manager = token.NewManager(authCfg)
		roles = map[int64][]model.Role{
			1: {{ID: 1, Name: model.RoleAdmin}, {ID: 2, Name: model.RoleMember}},
			7: {{ID: 2, Name: model.RoleMember}},
		}
		calls = 0
		resolver = func(_ context.Context, userID int64) ([]model.Role, error) {
			calls++
			return roles[userID], nil
		}
	})

	serve := func(req middleware.RoleRequirement, header string) *httptest.ResponseRecorder {
		engine := gin.New()
		engine.GET("/guarded",
			middleware.Authenticate(manager),
			middleware.Authorize(req, resolver),
			func(c *gin.Context) {
				userID, _ := middleware.CallerID(c)
				fields := logger.GetLogFields(c.Request.Context())
				Expect(fields.UserID).NotTo(BeNil())
				Expect(*fields.UserID).To(Equal(userID))
				c.String(http.StatusOK, "ok")
			},
		)
		r := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, r)
		return w
	}

	bearerFor := func(userID int64) string {
		access, _, err := manager.IssueAccess(userID)
		Expect(err).NotTo(HaveOccurred())
		return "Bearer " + access
	}

	Describe("Authenticate", func() {
		DescribeTable("rejects bad credentials with 401",
			func(header string) {
				w := serve(middleware.Authenticated(), header)
				Expect(w.Code).To(Equal(http.StatusUnauthorized))
				Expect(w.Body.String()).To(ContainSubstring(`"code":"unauthorized"`))
			},
			Entry("missing header", ""),
			Entry("wrong scheme", "Basic dXNlcjpwYXNz"),
			Entry("empty token", "Bearer "),
			Entry("garbage token", "Bearer not-a-jwt"),
		)

		It("rejects an expired token", func() {
			past := token.NewManager(authCfg).WithClock(func() time.Time { return time.Now().Add(-time.Hour) })
			access, _, err := past.IssueAccess(7)
			Expect(err).NotTo(HaveOccurred())

			w := serve(middleware.Authenticated(), "Bearer "+access)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects a token signed with another secret", func() {
			other := token.NewManager(config.AuthConfig{
				JWTSecret:      "another-secret-another-secret-xx",
				Issuer:         authCfg.Issuer,
				AccessTokenTTL: time.Minute,
			})
			access, _, err := other.IssueAccess(7)
			Expect(err).NotTo(HaveOccurred())

			w := serve(middleware.Authenticated(), "Bearer "+access)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("admits a valid token without loading roles", func() {
			w := serve(middleware.Authenticated(), bearerFor(7))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(calls).To(BeZero())
		})
	})

	Describe("Authorize", func() {
		It("admits a caller holding one of the roles", func() {
			w := serve(middleware.RequireAnyRole(model.RoleAdmin), bearerFor(1))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(calls).To(Equal(1))
		})

		It("forbids a caller holding none of the roles", func() {
			w := serve(middleware.RequireAnyRole(model.RoleAdmin), bearerFor(7))

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Body.String()).To(ContainSubstring(`"code":"forbidden"`))
		})

		It("forbids a caller with no roles at all", func() {
			w := serve(middleware.RequireAnyRole(model.RoleAdmin, model.RoleMember), bearerFor(99))

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("returns 500 when roles cannot be loaded", func() {
			resolver = func(_ context.Context, _ int64) ([]model.Role, error) {
				return nil, errors.New("db down")
			}

			w := serve(middleware.RequireAnyRole(model.RoleAdmin), bearerFor(1))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})

		It("returns 401 when Authenticate did not run", func() {
			engine := gin.New()
			engine.GET("/guarded", middleware.Authorize(middleware.Authenticated(), resolver), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
