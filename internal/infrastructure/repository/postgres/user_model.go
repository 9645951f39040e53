package postgres

import (
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/user"
)

type userTableModel struct {
	ID              int64     `db:"id"`
	Username        string    `db:"username"`
	PasswordHash    string    `db:"password_hash"`
	TotalPoints     int       `db:"total_points"`
	CorrectResult   int       `db:"correct_result"`
	CorrectGoalDiff int       `db:"correct_goal_diff"`
	CorrectTendency int       `db:"correct_tendency"`
	CreatedAt       time.Time `db:"created_at"`
}

func (m userTableModel) toDomain() user.User {
	return user.User{
		ID:              m.ID,
		Username:        m.Username,
		PasswordHash:    m.PasswordHash,
		TotalPoints:     m.TotalPoints,
		CorrectResult:   m.CorrectResult,
		CorrectGoalDiff: m.CorrectGoalDiff,
		CorrectTendency: m.CorrectTendency,
		CreatedAt:       m.CreatedAt,
	}
}
