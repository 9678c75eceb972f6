package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runRole(t *testing.T, stored interface{}, allowed ...string) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if stored != nil {
		c.Set("role", stored)
	}
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := RequireRole(allowed...)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec.Code
}

func TestRequireRoleAllows(t *testing.T) {
	if code := runRole(t, "admin", "admin"); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if code := runRole(t, "user", "user", "admin"); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
}

func TestRequireRoleDenies(t *testing.T) {
	if code := runRole(t, "user", "admin"); code != http.StatusForbidden {
		t.Fatalf("user hitting admin route: status = %d, want 403", code)
	}
	if code := runRole(t, nil, "admin"); code != http.StatusForbidden {
		t.Fatalf("missing role: status = %d, want 403", code)
	}
	if code := runRole(t, 42, "admin"); code != http.StatusForbidden {
		t.Fatalf("non-string role: status = %d, want 403", code)
	}
}
