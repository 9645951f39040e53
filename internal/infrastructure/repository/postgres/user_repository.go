package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bolzplatz/tippspiel/internal/domain/user"
	qb "github.com/bolzplatz/tippspiel/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (int64, error) {
	query := `INSERT INTO users (username, password_hash, created_at)
VALUES ($1, $2, $3) RETURNING id`

	var id int64
	if err := r.db.GetContext(ctx, &id, query, u.Username, u.PasswordHash, u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return 0, user.ErrUsernameTaken
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, bool, error) {
	return r.getOne(ctx, qb.Eq("username", username))
}

func (r *UserRepository) getOne(ctx context.Context, condition qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").Where(condition).ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build select user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users"); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	query, args, err := qb.Update("users").
		Set("password_hash", hash).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update password query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateUsername(ctx context.Context, id int64, username string) error {
	query, args, err := qb.Update("users").
		Set("username", username).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update username query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("update username: %w", err)
	}
	return nil
}

// UpdateAggregates zeroes every row first so users whose predictions were
// all deleted do not keep stale counters.
func (r *UserRepository) UpdateAggregates(ctx context.Context, totals []user.Aggregate) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update aggregates: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	zero := `UPDATE users SET total_points = 0, correct_result = 0,
correct_goal_diff = 0, correct_tendency = 0`
	if _, err := tx.ExecContext(ctx, zero); err != nil {
		return fmt.Errorf("zero user aggregates: %w", err)
	}

	for _, t := range totals {
		query, args, err := qb.Update("users").
			Set("total_points", t.TotalPoints).
			Set("correct_result", t.CorrectResult).
			Set("correct_goal_diff", t.CorrectGoalDiff).
			Set("correct_tendency", t.CorrectTendency).
			Where(qb.Eq("id", t.UserID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update aggregates query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update aggregates for user %d: %w", t.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update aggregates: %w", err)
	}
	return nil
}

func (r *UserRepository) ListRanked(ctx context.Context) ([]user.User, error) {
	query, args, err := qb.Select("*").From("users").
		OrderBy("total_points DESC", "correct_result DESC", "correct_goal_diff DESC", "correct_tendency DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ranked query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list ranked users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Delete relies on ON DELETE CASCADE to drop the user's predictions and
// votes alongside.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := qb.DeleteFrom("users").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
