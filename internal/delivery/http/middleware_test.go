package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(origins []string) *gin.Engine {
		router := gin.New()
		router.Use(CORSMiddleware(origins))
		router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	t.Run("allows listed origin", func(t *testing.T) {
		router := newRouter([]string{"https://pricecart.app"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://pricecart.app")
		router.ServeHTTP(w, req)

		assert.Equal(t, "https://pricecart.app", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin", func(t *testing.T) {
		router := newRouter([]string{"*"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://anywhere.example")
		router.ServeHTTP(w, req)

		assert.Equal(t, "https://anywhere.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("ignores unlisted origin", func(t *testing.T) {
		router := newRouter([]string{"https://pricecart.app"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://evil.example")
		router.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight with 204", func(t *testing.T) {
		router := newRouter([]string{"*"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "https://pricecart.app")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("limits bursts over the per-minute budget", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimitMiddleware(2))
		router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		statuses := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
			statuses = append(statuses, w.Code)
		}

		assert.Equal(t, http.StatusOK, statuses[0])
		assert.Equal(t, http.StatusOK, statuses[1])
		assert.Equal(t, http.StatusTooManyRequests, statuses[2])
	})

	t.Run("zero disables limiting", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimitMiddleware(0))
		router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 10; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}
