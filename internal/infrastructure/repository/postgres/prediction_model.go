package postgres

import (
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/prediction"
)

type predictionTableModel struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	MatchID     int64     `db:"match_id"`
	Round       int       `db:"round"`
	Team1Score  int       `db:"team1_score"`
	Team2Score  int       `db:"team2_score"`
	GoalDiff    int       `db:"goal_diff"`
	Winner      int       `db:"winner"`
	Points      int       `db:"points"`
	PredictedAt time.Time `db:"predicted_at"`
}

type predictionInsertModel struct {
	UserID      int64     `db:"user_id"`
	MatchID     int64     `db:"match_id"`
	Round       int       `db:"round"`
	Team1Score  int       `db:"team1_score"`
	Team2Score  int       `db:"team2_score"`
	GoalDiff    int       `db:"goal_diff"`
	Winner      int       `db:"winner"`
	Points      int       `db:"points"`
	PredictedAt time.Time `db:"predicted_at"`
}

func (m predictionTableModel) toDomain() prediction.Prediction {
	return prediction.Prediction{
		ID:          m.ID,
		UserID:      m.UserID,
		MatchID:     m.MatchID,
		Round:       m.Round,
		Team1Score:  m.Team1Score,
		Team2Score:  m.Team2Score,
		GoalDiff:    m.GoalDiff,
		Winner:      m.Winner,
		Points:      m.Points,
		PredictedAt: m.PredictedAt,
	}
}
