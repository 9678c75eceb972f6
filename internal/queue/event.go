package queue

// BookingApprovedEvent is the message published after an admin approves a
// booking. The seat fields are zero for bookings that are not attached to
// an event.
type BookingApprovedEvent struct {
	BookingID      uint64  `json:"booking_id"`
	Reference      string  `json:"reference"`
	UserID         uint64  `json:"user_id"`
	EventID        uint64  `json:"event_id,omitempty"`
	EventTitle     string  `json:"event_title,omitempty"`
	TicketType     string  `json:"ticket_type"`
	Quantity       uint32  `json:"quantity"`
	TotalPrice     float64 `json:"total_price"`
	AvailableSeats uint32  `json:"available_seats"`
	ApprovedAt     string  `json:"approved_at"` // RFC3339 UTC
}
