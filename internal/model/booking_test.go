package model

import (
	"errors"
	"testing"
)

func TestPlanTransitionAdmitted(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		adj      SeatAdjustment
	}{
		{BookingPending, BookingApproved, SeatReserve},
		{BookingPending, BookingRejected, SeatNone},
		{BookingApproved, BookingRejected, SeatRelease},
	}
	for _, tc := range cases {
		adj, noop, err := PlanTransition(tc.from, tc.to)
		if err != nil {
			t.Fatalf("%s->%s: unexpected error %v", tc.from, tc.to, err)
		}
		if noop {
			t.Fatalf("%s->%s: reported as no-op", tc.from, tc.to)
		}
		if adj != tc.adj {
			t.Fatalf("%s->%s: adjustment = %v, want %v", tc.from, tc.to, adj, tc.adj)
		}
	}
}

func TestPlanTransitionIdempotent(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingApproved, BookingRejected} {
		adj, noop, err := PlanTransition(s, s)
		if err != nil {
			t.Fatalf("%s->%s: unexpected error %v", s, s, err)
		}
		if !noop {
			t.Fatalf("%s->%s: expected no-op", s, s)
		}
		if adj != SeatNone {
			t.Fatalf("%s->%s: adjustment = %v, want SeatNone", s, s, adj)
		}
	}
}

func TestPlanTransitionRejectedStaysRejected(t *testing.T) {
	// Once rejected, a booking can never be approved again.
	_, _, err := PlanTransition(BookingRejected, BookingApproved)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("rejected->approved: err = %v, want ErrInvalidTransition", err)
	}
}

func TestPlanTransitionUnknownStatus(t *testing.T) {
	cases := []struct{ from, to BookingStatus }{
		{"cancelled", BookingApproved},
		{BookingPending, "done"},
		{"", BookingRejected},
	}
	for _, tc := range cases {
		if _, _, err := PlanTransition(tc.from, tc.to); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%q->%q: err = %v, want ErrInvalidTransition", tc.from, tc.to, err)
		}
	}
}

// The approval/rejection cycle must plan a reserve followed by a release of
// the same quantity, so the seat counter returns to where it started.
func TestApproveThenRejectRestoresSeats(t *testing.T) {
	adj1, _, err := PlanTransition(BookingPending, BookingApproved)
	if err != nil || adj1 != SeatReserve {
		t.Fatalf("pending->approved: adj=%v err=%v", adj1, err)
	}
	adj2, _, err := PlanTransition(BookingApproved, BookingRejected)
	if err != nil || adj2 != SeatRelease {
		t.Fatalf("approved->rejected: adj=%v err=%v", adj2, err)
	}
}

// Rejecting a pending booking must never release seats it did not reserve.
func TestRejectPendingLeavesSeatsAlone(t *testing.T) {
	adj, _, err := PlanTransition(BookingPending, BookingRejected)
	if err != nil {
		t.Fatalf("pending->rejected: %v", err)
	}
	if adj != SeatNone {
		t.Fatalf("pending->rejected adjustment = %v, want SeatNone", adj)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingApproved, BookingRejected} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	for _, s := range []BookingStatus{"", "Pending", "APPROVED", "done"} {
		if s.Valid() {
			t.Fatalf("%q should be invalid", s)
		}
	}
}
