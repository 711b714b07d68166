package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.RemoteAddr = "10.0.0.9:51234"
	return c, w
}

func TestClientIPMiddlewareStoresForwardedIP(t *testing.T) {
	c, _ := newTestContext(t)
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	ClientIPMiddleware()(c)

	if got := GetIPFromContext(c); got != "203.0.113.7" {
		t.Errorf("expected first forwarded IP, got %q", got)
	}
}

func TestClientIPMiddlewareIgnoresGarbageForwardedFor(t *testing.T) {
	c, _ := newTestContext(t)
	c.Request.Header.Set("X-Forwarded-For", "not-an-ip")

	ClientIPMiddleware()(c)

	if got := GetIPFromContext(c); got != "10.0.0.9" {
		t.Errorf("expected remote addr fallback, got %q", got)
	}
}

func TestGetIPFromContextWithoutMiddleware(t *testing.T) {
	c, _ := newTestContext(t)

	// no middleware ran, the helper falls back to header extraction
	if got := GetIPFromContext(c); got != "10.0.0.9" {
		t.Errorf("expected remote addr, got %q", got)
	}
}
