package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/idrsdev/agile-task/internal/http/middleware"
)

var _ = Describe("Recovery and RequestID", func() {
	It("turns a panic into a 500 with the error body", func() {
		engine := gin.New()
		engine.Use(middleware.Recovery())
		engine.GET("/boom", func(*gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring(`"code":"internal"`))
	})

	It("echoes an inbound request id", func() {
		engine := gin.New()
		engine.Use(middleware.RequestID())
		engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("req-123"))
	})

	It("assigns a request id when none is sent", func() {
		engine := gin.New()
		engine.Use(middleware.RequestID())
		engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(w.Header().Get(middleware.RequestIDHeader)).To(HaveLen(36))
	})
})
