package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bolzplatz/tippspiel/internal/domain/prediction"
	qb "github.com/bolzplatz/tippspiel/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID int64) (prediction.Prediction, bool, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(qb.Eq("user_id", userID), qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build select prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("get prediction: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID int64) ([]prediction.Prediction, error) {
	return r.selectPredictions(ctx, qb.Eq("user_id", userID))
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, matchID int64) ([]prediction.Prediction, error) {
	return r.selectPredictions(ctx, qb.Eq("match_id", matchID))
}

func (r *PredictionRepository) ListByKickoffRange(ctx context.Context, from, to time.Time) ([]prediction.Prediction, error) {
	query := `SELECT p.* FROM predictions p
JOIN matches m ON m.id = p.match_id
WHERE m.kickoff_at >= $1 AND m.kickoff_at < $2
ORDER BY p.id`

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("select predictions by kickoff range: %w", err)
	}
	return toDomainPredictions(rows), nil
}

func (r *PredictionRepository) selectPredictions(ctx context.Context, conditions ...qb.Condition) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select predictions query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select predictions: %w", err)
	}
	return toDomainPredictions(rows), nil
}

func (r *PredictionRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM predictions WHERE user_id = $1", userID); err != nil {
		return 0, fmt.Errorf("count predictions: %w", err)
	}
	return count, nil
}

func (r *PredictionRepository) CountRatedByUser(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM predictions p
JOIN matches m ON m.id = p.match_id
WHERE p.user_id = $1 AND m.finished = TRUE`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count rated predictions: %w", err)
	}
	return count, nil
}

func (r *PredictionRepository) Insert(ctx context.Context, p prediction.Prediction) error {
	model := predictionInsertModel{
		UserID:      p.UserID,
		MatchID:     p.MatchID,
		Round:       p.Round,
		Team1Score:  p.Team1Score,
		Team2Score:  p.Team2Score,
		GoalDiff:    p.GoalDiff,
		Winner:      p.Winner,
		Points:      p.Points,
		PredictedAt: p.PredictedAt,
	}
	query, args, err := qb.InsertModel("predictions", model, "")
	if err != nil {
		return fmt.Errorf("build insert prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) Update(ctx context.Context, p prediction.Prediction) error {
	query, args, err := qb.Update("predictions").
		Set("team1_score", p.Team1Score).
		Set("team2_score", p.Team2Score).
		Set("goal_diff", p.GoalDiff).
		Set("winner", p.Winner).
		Set("predicted_at", p.PredictedAt).
		Where(qb.Eq("id", p.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := qb.DeleteFrom("predictions").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete prediction: %w", err)
	}
	return nil
}

// SetPointsByMatch overwrites points in one pass per awarded tier rather
// than one UPDATE per row.
func (r *PredictionRepository) SetPointsByMatch(ctx context.Context, matchID int64, pointsByPrediction map[int64]int) error {
	if len(pointsByPrediction) == 0 {
		return nil
	}

	idsByPoints := make(map[int][]any)
	for id, points := range pointsByPrediction {
		idsByPoints[points] = append(idsByPoints[points], id)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx set points: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for points, ids := range idsByPoints {
		query, args, err := qb.Update("predictions").
			Set("points", points).
			Where(qb.Eq("match_id", matchID), qb.In("id", ids)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build set points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("set points: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set points: %w", err)
	}
	return nil
}

func (r *PredictionRepository) AggregateTotals(ctx context.Context) ([]prediction.UserTotals, error) {
	query := `SELECT
    user_id,
    COALESCE(SUM(points), 0) AS total_points,
    COUNT(*) FILTER (WHERE points = 4) AS correct_result,
    COUNT(*) FILTER (WHERE points = 3) AS correct_goal_diff,
    COUNT(*) FILTER (WHERE points = 2) AS correct_tendency
FROM predictions
GROUP BY user_id
ORDER BY user_id`

	type totalsRow struct {
		UserID          int64 `db:"user_id"`
		TotalPoints     int   `db:"total_points"`
		CorrectResult   int   `db:"correct_result"`
		CorrectGoalDiff int   `db:"correct_goal_diff"`
		CorrectTendency int   `db:"correct_tendency"`
	}

	var rows []totalsRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("aggregate prediction totals: %w", err)
	}

	out := make([]prediction.UserTotals, 0, len(rows))
	for _, row := range rows {
		out = append(out, prediction.UserTotals{
			UserID:          row.UserID,
			TotalPoints:     row.TotalPoints,
			CorrectResult:   row.CorrectResult,
			CorrectGoalDiff: row.CorrectGoalDiff,
			CorrectTendency: row.CorrectTendency,
		})
	}
	return out, nil
}

func toDomainPredictions(rows []predictionTableModel) []prediction.Prediction {
	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
