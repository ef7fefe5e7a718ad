package domain

import "time"

// Program statuses derived from the date range.
const (
	ProgramStatusUpcoming  = "upcoming"
	ProgramStatusActive    = "active"
	ProgramStatusCompleted = "completed"
)

// Program is a training plan a coach assigns to one of their clients.
type Program struct {
	ID          string
	Name        string
	ClientID    string
	CoachID     string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Status derives the program's lifecycle state from its date range.
func (p Program) Status(now time.Time) string {
	if p.StartDate.After(now) {
		return ProgramStatusUpcoming
	}
	if p.EndDate != nil && p.EndDate.Before(now) {
		return ProgramStatusCompleted
	}
	return ProgramStatusActive
}
