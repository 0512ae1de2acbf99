package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// setupIdentityTest builds a router with the identity middleware in front of
// a route that echoes the resolved user id.
func setupIdentityTest() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := Handler{}
	router := gin.New()
	router.GET("/whoami", h.identityMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, userID(c))
	})
	return router
}

func doWhoamiRequest(router *gin.Engine, headerValue string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/whoami", nil)
	if headerValue != "" {
		req.Header.Set(userIDHeader, headerValue)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdentityMiddleware_ValidUUID(t *testing.T) {
	router := setupIdentityTest()
	id := "7b9f5a1c-3d2e-4f60-9a8b-1c2d3e4f5a6b"

	w := doWhoamiRequest(router, id)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != id {
		t.Errorf("resolved user id = %s, want %s", w.Body.String(), id)
	}
}

func TestIdentityMiddleware_MissingHeader(t *testing.T) {
	router := setupIdentityTest()
	w := doWhoamiRequest(router, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestIdentityMiddleware_MalformedID(t *testing.T) {
	router := setupIdentityTest()
	w := doWhoamiRequest(router, "not-a-uuid")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
