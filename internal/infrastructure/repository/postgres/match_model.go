package postgres

import (
	"database/sql"
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/match"
)

type matchTableModel struct {
	ID           int64         `db:"id"`
	Round        int           `db:"round"`
	Team1ID      int64         `db:"team1_id"`
	Team2ID      int64         `db:"team2_id"`
	Team1Score   sql.NullInt64 `db:"team1_score"`
	Team2Score   sql.NullInt64 `db:"team2_score"`
	KickoffAt    time.Time     `db:"kickoff_at"`
	Finished     bool          `db:"finished"`
	Evaluated    bool          `db:"predictions_evaluated"`
	League       string        `db:"league"`
	GroupName    string        `db:"group_name"`
	LastUpdateAt time.Time     `db:"last_update_at"`
	EvaluatedAt  *time.Time    `db:"evaluated_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:           m.ID,
		Round:        m.Round,
		Team1ID:      m.Team1ID,
		Team2ID:      m.Team2ID,
		Team1Score:   nullIntToPtr(m.Team1Score),
		Team2Score:   nullIntToPtr(m.Team2Score),
		KickoffAt:    m.KickoffAt,
		Finished:     m.Finished,
		Evaluated:    m.Evaluated,
		League:       m.League,
		GroupName:    m.GroupName,
		LastUpdateAt: m.LastUpdateAt,
		EvaluatedAt:  m.EvaluatedAt,
	}
}

func matchToModel(m match.Match) matchTableModel {
	return matchTableModel{
		ID:           m.ID,
		Round:        m.Round,
		Team1ID:      m.Team1ID,
		Team2ID:      m.Team2ID,
		Team1Score:   ptrToNullInt(m.Team1Score),
		Team2Score:   ptrToNullInt(m.Team2Score),
		KickoffAt:    m.KickoffAt,
		Finished:     m.Finished,
		Evaluated:    m.Evaluated,
		League:       m.League,
		GroupName:    m.GroupName,
		LastUpdateAt: m.LastUpdateAt,
		EvaluatedAt:  m.EvaluatedAt,
	}
}
