package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/event-booking/internal/model"
)

// The validation tests run against handlers with nil repositories: every
// rejected request must be turned away before any database access.

func postJSON(t *testing.T, h echo.HandlerFunc, target, body string, setup func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func asUser(c echo.Context) {
	c.Set("user_id", float64(5))
	c.Set("role", "user")
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	h := NewBookingHandler(nil, nil)
	rec := postJSON(t, h.Create, "/v1/bookings", `{"ticket_type":"vip","quantity":1}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	h := NewBookingHandler(nil, nil)
	cases := []struct {
		name string
		body string
	}{
		{"missing ticket type", `{"quantity":2,"total_price":10}`},
		{"blank ticket type", `{"ticket_type":"  ","quantity":2,"total_price":10}`},
		{"zero quantity", `{"ticket_type":"vip","quantity":0,"total_price":10}`},
		{"negative quantity", `{"ticket_type":"vip","quantity":-3,"total_price":10}`},
		// 2^32 and 2^32+3 would wrap to 0 and 3 in the uint32 column.
		{"quantity past uint32", `{"ticket_type":"vip","quantity":4294967296,"total_price":10}`},
		{"quantity wrapping to small", `{"ticket_type":"vip","quantity":4294967299,"total_price":10}`},
		{"negative price", `{"ticket_type":"vip","quantity":1,"total_price":-1}`},
		{"malformed json", `{"ticket_type":`},
	}
	for _, tc := range cases {
		rec := postJSON(t, h.Create, "/v1/bookings", tc.body, asUser)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", tc.name, rec.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: invalid error body: %v", tc.name, err)
		}
		if msg, _ := body["message"].(string); msg == "" {
			t.Fatalf("%s: error body has no message", tc.name)
		}
	}
}

func TestCreateBookingBadEventIDParam(t *testing.T) {
	h := NewBookingHandler(nil, nil)
	rec := postJSON(t, h.Create, "/v1/bookings/abc", `{"ticket_type":"vip","quantity":1}`, func(c echo.Context) {
		asUser(c)
		c.SetParamNames("eventId")
		c.SetParamValues("abc")
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTransitionBadBookingIDParam(t *testing.T) {
	h := &AdminBookingHandler{}
	for _, raw := range []string{"abc", "0", ""} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPut, "/v1/bookings/"+raw+"/approve", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(raw)
		if err := h.Approve(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%q: status = %d, want 400", raw, rec.Code)
		}
	}
}

func TestBookingJSONShape(t *testing.T) {
	eid := uint64(3)
	b := &model.Booking{
		ID:         1,
		Reference:  "ref-1",
		EventID:    &eid,
		UserID:     5,
		TicketType: "vip",
		Quantity:   2,
		TotalPrice: 99.5,
		Status:     model.BookingPending,
	}
	out := bookingJSON(b)
	if out.Status != "pending" {
		t.Fatalf("status = %q", out.Status)
	}
	if out.EventID == nil || *out.EventID != 3 {
		t.Fatalf("event id = %v", out.EventID)
	}

	b.EventID = nil
	bs, err := json.Marshal(bookingJSON(b))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(bs), "event_id") {
		t.Fatalf("nil event id serialized: %s", bs)
	}
}
