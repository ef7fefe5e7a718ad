package domain

import "time"

// Exercise is a reusable movement definition owned by the coach who created
// it.
type Exercise struct {
	ID          string
	Name        string
	Description string
	VideoURL    string
	CreatedBy   string // coach id
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
