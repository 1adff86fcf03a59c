package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/api/v1/admin/users", nil)
	c.Set(userContextKey, models.User{Role: models.RoleUser})

	RequireRole(models.RoleAdmin)(c)

	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", recorder.Code)
	}
	if !c.IsAborted() {
		t.Fatal("expected request to be aborted")
	}
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/api/v1/admin/users", nil)
	c.Set(userContextKey, models.User{Role: models.RoleAdmin})

	RequireRole(models.RoleAdmin, models.RoleManager)(c)

	if c.IsAborted() {
		t.Fatalf("expected admin request to pass, got status %d", recorder.Code)
	}
}

func TestRequireRoleWithoutLoginIsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/api/v1/admin/users", nil)

	RequireRole(models.RoleAdmin)(c)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", recorder.Code)
	}
}

func TestSessionTokenFromRequestPrefersCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/userdashboard", nil)
	c.Request.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
	c.Request.Header.Set("Authorization", "Bearer header-token")

	if got := sessionTokenFromRequest(c); got != "cookie-token" {
		t.Fatalf("expected cookie token to win, got %q", got)
	}
}

func TestSessionTokenFromRequestBearerFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/userdashboard", nil)
	c.Request.Header.Set("Authorization", "Bearer header-token")

	if got := sessionTokenFromRequest(c); got != "header-token" {
		t.Fatalf("expected bearer token, got %q", got)
	}
}

func TestSessionTokenFromRequestRejectsMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/userdashboard", nil)
	c.Request.Header.Set("Authorization", "Token abc")

	if got := sessionTokenFromRequest(c); got != "" {
		t.Fatalf("expected empty token for malformed header, got %q", got)
	}
}
