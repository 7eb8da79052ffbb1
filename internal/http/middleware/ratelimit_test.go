package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_AllowsThenThrottles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(0, 2, KeyByClientOrIP()) // no refill, burst 2
	r.Use(rl.Handler())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("req %d: status = %d", i, w.Code)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}
}

func TestRateLimiter_SeparateBucketsPerClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(0, 1, KeyByClientOrIP())
	r.Use(func(c *gin.Context) {
		c.Set("clientID", c.GetHeader(HeaderClientID))
		c.Next()
	})
	r.Use(rl.Handler())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(client string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(HeaderClientID, client)
		r.ServeHTTP(w, req)
		return w.Code
	}

	if hit("a") != http.StatusOK {
		t.Fatal("client a first request should pass")
	}
	if hit("a") != http.StatusTooManyRequests {
		t.Fatal("client a second request should throttle")
	}
	if hit("b") != http.StatusOK {
		t.Fatal("client b has its own bucket")
	}
}

func TestRateLimiter_ReplayBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(0, 1, KeyByClientOrIP())
	r.Use(func(c *gin.Context) {
		c.Set(ctxKeyRateBypass, true)
		c.Next()
	})
	r.Use(rl.Handler())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("replay %d throttled", i)
		}
	}
}
