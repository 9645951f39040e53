package user

import "time"

// User is a registered player. The aggregate columns are derived from the
// predictions table and recomputed whenever a match is evaluated.
type User struct {
	ID              int64
	Username        string
	PasswordHash    string
	TotalPoints     int
	CorrectResult   int
	CorrectGoalDiff int
	CorrectTendency int
	CreatedAt       time.Time
}

// Aggregate carries the recomputed standing counters for a single user.
type Aggregate struct {
	UserID          int64
	TotalPoints     int
	CorrectResult   int
	CorrectGoalDiff int
	CorrectTendency int
}
