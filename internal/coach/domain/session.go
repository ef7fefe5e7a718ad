package domain

import "time"

// Session is a server-side login session. Only the fingerprint of the opaque
// cookie token is persisted.
type Session struct {
	ID        string
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Roles is the resolved role set for a user. The three flags are independent;
// an admin may also be a coach, a coach may also be someone else's client.
type Roles struct {
	IsAdmin  bool
	IsCoach  bool
	IsClient bool
}
