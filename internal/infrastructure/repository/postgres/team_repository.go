package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bolzplatz/tippspiel/internal/domain/team"
	qb "github.com/bolzplatz/tippspiel/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	return r.list(ctx, "id")
}

func (r *TeamRepository) ListByRank(ctx context.Context) ([]team.Team, error) {
	return r.list(ctx, "rank", "id")
}

func (r *TeamRepository) list(ctx context.Context, orderBy ...string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy(orderBy...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) Insert(ctx context.Context, t team.Team) error {
	query, args, err := qb.InsertModel("teams", teamToModel(t), "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) UpdateGroupName(ctx context.Context, id int64, groupName string) error {
	query, args, err := qb.Update("teams").
		Set("group_name", groupName).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team group query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team group: %w", err)
	}
	return nil
}

func (r *TeamRepository) UpdateStats(ctx context.Context, teams []team.Team) error {
	if len(teams) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update team stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range teams {
		query, args, err := qb.Update("teams").
			Set("points", t.Points).
			Set("goals", t.Goals).
			Set("opponent_goals", t.OpponentGoals).
			Set("matches", t.Matches).
			Set("won", t.Won).
			Set("lost", t.Lost).
			Set("draw", t.Draw).
			Set("goal_diff", t.GoalDiff).
			Set("rank", t.Rank).
			Where(qb.Eq("id", t.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update team stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update team stats: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update team stats: %w", err)
	}
	return nil
}

func (r *TeamRepository) TouchAll(ctx context.Context, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE teams SET updated_at = $1", at); err != nil {
		return fmt.Errorf("touch teams: %w", err)
	}
	return nil
}
