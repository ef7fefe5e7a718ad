package domain

import "time"

type User struct {
	ID        string
	Email     string // unique, stored lowercased
	FirstName string
	LastName  string
	Picture   string // avatar URL from the identity provider, may be empty
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName is the user's full name, falling back to the email when the
// identity provider supplied no name parts.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}
