package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newCtx(method, target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestGetUserID(t *testing.T) {
	cases := []struct {
		stored interface{}
		want   uint64
	}{
		{uint64(5), 5},
		{int(6), 6},
		{int64(7), 7},
		{float64(8), 8}, // JWT claims decode numbers as float64
		{"9", 9},
	}
	for _, tc := range cases {
		c := newCtx(http.MethodGet, "/")
		c.Set("user_id", tc.stored)
		got, err := getUserID(c)
		if err != nil {
			t.Fatalf("%T: %v", tc.stored, err)
		}
		if got != tc.want {
			t.Fatalf("%T: got %d, want %d", tc.stored, got, tc.want)
		}
	}
}

func TestGetUserIDInvalid(t *testing.T) {
	for _, stored := range []interface{}{nil, "abc", true} {
		c := newCtx(http.MethodGet, "/")
		if stored != nil {
			c.Set("user_id", stored)
		}
		if _, err := getUserID(c); err == nil {
			t.Fatalf("%v: expected error", stored)
		}
	}
}

func TestPathID(t *testing.T) {
	c := newCtx(http.MethodGet, "/")
	c.SetParamNames("id")
	c.SetParamValues("42")
	id, ok := pathID(c, "id")
	if !ok || id != 42 {
		t.Fatalf("got (%d, %v), want (42, true)", id, ok)
	}

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		c := newCtx(http.MethodGet, "/")
		c.SetParamNames("id")
		c.SetParamValues(raw)
		if _, ok := pathID(c, "id"); ok {
			t.Fatalf("%q: expected failure", raw)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	c := newCtx(http.MethodGet, "/")
	if isAdmin(c) {
		t.Fatal("missing role reported as admin")
	}
	c.Set("role", "user")
	if isAdmin(c) {
		t.Fatal("user role reported as admin")
	}
	c.Set("role", "admin")
	if !isAdmin(c) {
		t.Fatal("admin role not recognized")
	}
}
