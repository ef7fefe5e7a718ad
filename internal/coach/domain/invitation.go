package domain

import "time"

// InvitationToken is an opaque capability granting the bearer the ability to
// link themselves as a client of the owning coach. Tokens are reusable until
// expiry; many invitees may redeem the same link. The raw token is stored so
// repeat issuance inside the reuse window can hand back the same string.
type InvitationToken struct {
	ID        string
	CoachID   string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token has lapsed as of now.
func (t InvitationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
