package model

import "time"

// Contact is a message submitted through the public contact form. IsRead
// lets admins track which inbox entries they have handled.
type Contact struct {
	ID        uint64    // contacts.id
	Name      string    // contacts.name
	Email     string    // contacts.email
	Subject   string    // contacts.subject
	Message   string    // contacts.message
	IsRead    bool      // contacts.is_read
	CreatedAt time.Time // contacts.created_at
}

// About is the single editable about-page record. There is at most one row;
// updates upsert it.
type About struct {
	ID          uint64    // about.id
	Heading     string    // about.heading
	Description string    // about.description
	Mission     string    // about.mission
	Vision      string    // about.vision
	UpdatedAt   time.Time // about.updated_at
}
