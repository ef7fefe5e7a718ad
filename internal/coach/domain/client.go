package domain

import "time"

// Client marks a user as holding the client role. At most one Client record
// exists per user. A client may be linked to any number of coaches.
type Client struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// CoachLink records an active coaching relationship. The (client, coach)
// pair is unique at the storage layer, which is what makes concurrent
// redemptions of the same invitation safe.
type CoachLink struct {
	ClientID string
	CoachID  string
	LinkedAt time.Time
}
