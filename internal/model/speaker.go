package model

import "time"

// Speaker is a public speaker profile as stored in the `speakers` table.
// Expertise is persisted as a comma separated list and split by the
// repository when loading.
type Speaker struct {
	ID        uint64    // speakers.id
	Name      string    // speakers.name
	Username  string    // speakers.username (unique)
	Email     string    // speakers.email (unique)
	Bio       string    // speakers.bio
	Expertise []string  // speakers.expertise (csv column)
	Photo     string    // speakers.photo (URL)
	CreatedAt time.Time // speakers.created_at
	UpdatedAt time.Time // speakers.updated_at
}

// SpeakerSchedule is one talk slot on a speaker's personal agenda,
// independent of any event agenda entry that may also reference the
// speaker.
type SpeakerSchedule struct {
	ID          uint64    // speaker_schedules.id
	SpeakerID   uint64    // speaker_schedules.speaker_id
	Title       string    // speaker_schedules.title
	Description string    // speaker_schedules.description
	StartsAt    time.Time // speaker_schedules.starts_at
	EndsAt      time.Time // speaker_schedules.ends_at
}
