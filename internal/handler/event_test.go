package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestEventReqValidate(t *testing.T) {
	good := eventReq{Title: "GoConf", Date: "2026-10-01T09:00:00Z", TotalSeats: 100}
	if _, msg := good.validate(); msg != "" {
		t.Fatalf("valid request rejected: %s", msg)
	}

	cases := []eventReq{
		{Title: "", Date: "2026-10-01T09:00:00Z", TotalSeats: 100},
		{Title: "  ", Date: "2026-10-01T09:00:00Z", TotalSeats: 100},
		{Title: "GoConf", Date: "2026-10-01T09:00:00Z", TotalSeats: 0},
		{Title: "GoConf", Date: "2026-10-01T09:00:00Z", TotalSeats: -5},
		{Title: "GoConf", Date: "next tuesday", TotalSeats: 100},
		{Title: "GoConf", Date: "", TotalSeats: 100},
	}
	for i, tc := range cases {
		if _, msg := tc.validate(); msg == "" {
			t.Fatalf("case %d: invalid request accepted", i)
		}
	}
}

func TestScheduleReqValidate(t *testing.T) {
	good := scheduleReq{Title: "Keynote", StartsAt: "2026-10-01T09:00:00Z", EndsAt: "2026-10-01T10:00:00Z"}
	starts, ends, msg := good.validate()
	if msg != "" {
		t.Fatalf("valid request rejected: %s", msg)
	}
	if !ends.After(starts) {
		t.Fatal("parsed times out of order")
	}

	cases := []scheduleReq{
		{Title: "", StartsAt: "2026-10-01T09:00:00Z", EndsAt: "2026-10-01T10:00:00Z"},
		{Title: "Keynote", StartsAt: "bad", EndsAt: "2026-10-01T10:00:00Z"},
		{Title: "Keynote", StartsAt: "2026-10-01T09:00:00Z", EndsAt: "bad"},
		// End before start and end equal to start are both invalid.
		{Title: "Keynote", StartsAt: "2026-10-01T10:00:00Z", EndsAt: "2026-10-01T09:00:00Z"},
		{Title: "Keynote", StartsAt: "2026-10-01T09:00:00Z", EndsAt: "2026-10-01T09:00:00Z"},
	}
	for i, tc := range cases {
		if _, _, msg := tc.validate(); msg == "" {
			t.Fatalf("case %d: invalid request accepted", i)
		}
	}
}

func TestModerateRejectsUnknownStatus(t *testing.T) {
	h := &CommentHandler{}
	for _, body := range []string{`{"status":"pending"}`, `{"status":"deleted"}`, `{"status":""}`} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPut, "/v1/comments/1/approve", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")
		if err := h.Moderate(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", body, rec.Code)
		}
	}
}
