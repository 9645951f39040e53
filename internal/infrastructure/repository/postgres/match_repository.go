package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bolzplatz/tippspiel/internal/domain/match"
	qb "github.com/bolzplatz/tippspiel/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	return r.selectMatches(ctx)
}

func (r *MatchRepository) ListByKickoffRange(ctx context.Context, from, to time.Time) ([]match.Match, error) {
	return r.selectMatches(ctx, qb.Expr("kickoff_at >= ? AND kickoff_at < ?", from, to))
}

func (r *MatchRepository) ListUnderway(ctx context.Context, now time.Time) ([]match.Match, error) {
	return r.selectMatches(ctx,
		qb.Expr("kickoff_at <= ?", now),
		qb.Eq("finished", false),
	)
}

func (r *MatchRepository) ListNeedingEvaluation(ctx context.Context, now time.Time) ([]match.Match, error) {
	return r.selectMatches(ctx,
		qb.Eq("predictions_evaluated", false),
		qb.Expr("(finished = TRUE OR (kickoff_at <= ? AND finished = FALSE))", now),
	)
}

func (r *MatchRepository) selectMatches(ctx context.Context, conditions ...qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) Upsert(ctx context.Context, m match.Match) error {
	model := matchToModel(m)
	// Evaluation columns are deliberately absent from the update list so a
	// re-sync never resets scoring state.
	query, args, err := qb.InsertModel("matches", model, `ON CONFLICT (id) DO UPDATE SET
    round = EXCLUDED.round,
    team1_id = EXCLUDED.team1_id,
    team2_id = EXCLUDED.team2_id,
    team1_score = EXCLUDED.team1_score,
    team2_score = EXCLUDED.team2_score,
    kickoff_at = EXCLUDED.kickoff_at,
    finished = EXCLUDED.finished,
    league = EXCLUDED.league,
    group_name = EXCLUDED.group_name,
    last_update_at = EXCLUDED.last_update_at`)
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) UpdateScores(ctx context.Context, id int64, team1Score, team2Score *int, finished bool, lastUpdateAt time.Time) error {
	query, args, err := qb.Update("matches").
		Set("team1_score", ptrToNullInt(team1Score)).
		Set("team2_score", ptrToNullInt(team2Score)).
		Set("finished", finished).
		Set("last_update_at", lastUpdateAt).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match scores query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match scores: %w", err)
	}
	return nil
}

func (r *MatchRepository) SetEvaluation(ctx context.Context, id int64, evaluated bool, at time.Time) error {
	builder := qb.Update("matches").Set("evaluated_at", at)
	if evaluated {
		builder.Set("predictions_evaluated", true)
	}
	query, args, err := builder.Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build update match evaluation query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match evaluation: %w", err)
	}
	return nil
}

func (r *MatchRepository) CountFinished(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM matches WHERE finished = TRUE"); err != nil {
		return 0, fmt.Errorf("count finished matches: %w", err)
	}
	return count, nil
}

func (r *MatchRepository) LastEvaluatedAt(ctx context.Context) (*time.Time, error) {
	var at *time.Time
	if err := r.db.GetContext(ctx, &at, "SELECT MAX(evaluated_at) FROM matches"); err != nil {
		return nil, fmt.Errorf("read last evaluation time: %w", err)
	}
	return at, nil
}

func (r *MatchRepository) LastUpdatedAt(ctx context.Context) (*time.Time, error) {
	var at *time.Time
	if err := r.db.GetContext(ctx, &at, "SELECT MAX(last_update_at) FROM matches"); err != nil {
		return nil, fmt.Errorf("read last update time: %w", err)
	}
	return at, nil
}
