package model

import (
	"errors"
	"time"
)

// BookingStatus enumerates the lifecycle states of a booking. A booking is
// created pending and is later approved or rejected by an admin. Seats are
// only reserved against the linked event at approval time; a pending
// booking never holds inventory.
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected:
		return true
	}
	return false
}

// SeatAdjustment describes what an admitted transition must do to the
// linked event's available_seats counter, inside the same transaction that
// flips the status.
type SeatAdjustment int

const (
	// SeatNone leaves the counter untouched.
	SeatNone SeatAdjustment = iota
	// SeatReserve decrements available_seats by the booking quantity,
	// clamped at zero.
	SeatReserve
	// SeatRelease increments available_seats by the booking quantity,
	// clamped at total_seats.
	SeatRelease
)

// ErrInvalidTransition is returned by PlanTransition for any status change
// that is not in the transition table. In particular, approving a booking
// that was already rejected is refused: silently re-approving would
// decrement seats again with no record of the earlier rejection.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// transitions is the explicit table of admitted status changes and the seat
// adjustment each one requires. Anything absent from the table is invalid.
var transitions = map[BookingStatus]map[BookingStatus]SeatAdjustment{
	BookingPending: {
		BookingApproved: SeatReserve,
		BookingRejected: SeatNone, // pending bookings never reserved seats
	},
	BookingApproved: {
		BookingRejected: SeatRelease, // reversal restores the inventory
	},
}

// PlanTransition decides what a from→to status change must do. It returns
// the required seat adjustment and whether the change is a no-op. Applying
// the current status again is idempotent: (SeatNone, true, nil). Any pair
// not in the transition table yields ErrInvalidTransition.
func PlanTransition(from, to BookingStatus) (SeatAdjustment, bool, error) {
	if !from.Valid() || !to.Valid() {
		return SeatNone, false, ErrInvalidTransition
	}
	if from == to {
		return SeatNone, true, nil
	}
	if adj, ok := transitions[from][to]; ok {
		return adj, false, nil
	}
	return SeatNone, false, ErrInvalidTransition
}

// Booking mirrors the `bookings` table. EventID is nullable: the platform
// accepts general ticket requests that are not attached to a specific
// event, and those transition through the same workflow without touching
// any seat counter.
type Booking struct {
	ID         uint64        // bookings.id
	Reference  string        // bookings.reference (uuid shown to clients)
	EventID    *uint64       // bookings.event_id (nullable)
	UserID     uint64        // bookings.user_id
	TicketType string        // bookings.ticket_type
	Quantity   uint32        // bookings.quantity (> 0)
	TotalPrice float64       // bookings.total_price (>= 0)
	Status     BookingStatus // bookings.status
	CreatedAt  time.Time     // bookings.created_at
	UpdatedAt  time.Time     // bookings.updated_at
}
