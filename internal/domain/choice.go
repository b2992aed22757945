package domain

import "time"

// Choice records a single dilemma answer submitted by a user.
type Choice struct {
	ID             int64
	UserID         int64
	Period         string
	Question       string
	SelectedAnswer string
	Score          float64
	CreatedAt      time.Time
}
