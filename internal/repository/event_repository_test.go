package repository

import (
	"strings"
	"testing"
)

// Lowering total_seats below the current availability must repair
// available_seats inside the same UPDATE; otherwise the row reports more
// available seats than exist until the next release happens to clamp it.
func TestUpdateEventQueryClampsAvailability(t *testing.T) {
	if !strings.Contains(updateEventQuery, "available_seats = LEAST(available_seats, ?)") {
		t.Fatal("event update statement lost the availability clamp")
	}
	// title, description, date, location, image, total_seats, the clamp
	// argument, and the id.
	if got := strings.Count(updateEventQuery, "?"); got != 8 {
		t.Fatalf("placeholder count = %d, want 8", got)
	}
}
