package postgres

import (
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/team"
)

type teamTableModel struct {
	ID            int64     `db:"id"`
	Name          string    `db:"name"`
	ShortName     string    `db:"short_name"`
	IconURL       string    `db:"icon_url"`
	IconPath      string    `db:"icon_path"`
	GroupName     string    `db:"group_name"`
	Points        int       `db:"points"`
	Goals         int       `db:"goals"`
	OpponentGoals int       `db:"opponent_goals"`
	Matches       int       `db:"matches"`
	Won           int       `db:"won"`
	Lost          int       `db:"lost"`
	Draw          int       `db:"draw"`
	GoalDiff      int       `db:"goal_diff"`
	Rank          int       `db:"rank"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:            m.ID,
		Name:          m.Name,
		ShortName:     m.ShortName,
		IconURL:       m.IconURL,
		IconPath:      m.IconPath,
		GroupName:     m.GroupName,
		Points:        m.Points,
		Goals:         m.Goals,
		OpponentGoals: m.OpponentGoals,
		Matches:       m.Matches,
		Won:           m.Won,
		Lost:          m.Lost,
		Draw:          m.Draw,
		GoalDiff:      m.GoalDiff,
		Rank:          m.Rank,
		UpdatedAt:     m.UpdatedAt,
	}
}

func teamToModel(t team.Team) teamTableModel {
	return teamTableModel{
		ID:            t.ID,
		Name:          t.Name,
		ShortName:     t.ShortName,
		IconURL:       t.IconURL,
		IconPath:      t.IconPath,
		GroupName:     t.GroupName,
		Points:        t.Points,
		Goals:         t.Goals,
		OpponentGoals: t.OpponentGoals,
		Matches:       t.Matches,
		Won:           t.Won,
		Lost:          t.Lost,
		Draw:          t.Draw,
		GoalDiff:      t.GoalDiff,
		Rank:          t.Rank,
		UpdatedAt:     t.UpdatedAt,
	}
}
