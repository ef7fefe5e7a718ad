package domain

import "time"

// Coach marks a user as holding the coach role. At most one Coach record
// exists per user.
type Coach struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// CoachProfile is the public subset of a coach shown to invitees before they
// authenticate ("you are about to join Coach X").
type CoachProfile struct {
	CoachID   string
	FirstName string
	LastName  string
	Picture   string
}
