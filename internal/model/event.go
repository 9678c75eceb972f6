package model

import "time"

// Event represents a bookable occasion with a finite seat capacity as
// stored in the `events` table. AvailableSeats is the remaining unreserved
// capacity; it starts equal to TotalSeats and is mutated exclusively by the
// booking workflow (decremented on approval, restored on rejection of a
// previously approved booking). Event-edit endpoints never write it after
// creation. The invariant 0 <= AvailableSeats <= TotalSeats holds at all
// times.
//
// Fields:
//
//	ID             – primary key identifier.
//	Title          – event title.
//	Description    – optional long description.
//	Date           – when the event takes place.
//	Location       – optional venue text.
//	Image          – optional image URL.
//	TotalSeats     – full capacity of the event.
//	AvailableSeats – remaining unreserved capacity.
//	CreatedAt      – creation timestamp.
//	UpdatedAt      – last update timestamp.
type Event struct {
	ID             uint64    // events.id
	Title          string    // events.title
	Description    string    // events.description
	Date           time.Time // events.date
	Location       string    // events.location
	Image          string    // events.image (URL, upload storage out of scope)
	TotalSeats     uint32    // events.total_seats
	AvailableSeats uint32    // events.available_seats
	CreatedAt      time.Time // events.created_at
	UpdatedAt      time.Time // events.updated_at
}

// EventSchedule is a single agenda entry of an event, optionally linked to
// a speaker profile.
//
// Fields:
//
//	ID          – primary key identifier.
//	EventID     – owning event.
//	Title       – agenda item title.
//	Description – optional details.
//	StartsAt    – start of the slot.
//	EndsAt      – end of the slot.
//	SpeakerID   – optional reference to a speaker.
type EventSchedule struct {
	ID          uint64    // event_schedules.id
	EventID     uint64    // event_schedules.event_id
	Title       string    // event_schedules.title
	Description string    // event_schedules.description
	StartsAt    time.Time // event_schedules.starts_at
	EndsAt      time.Time // event_schedules.ends_at
	SpeakerID   *uint64   // event_schedules.speaker_id (nullable)
}
