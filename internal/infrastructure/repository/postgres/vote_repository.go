package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bolzplatz/tippspiel/internal/domain/poll"
	qb "github.com/bolzplatz/tippspiel/internal/platform/querybuilder"
)

type VoteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) GetByUserAndPoll(ctx context.Context, userID int64, pollID string) (poll.Vote, bool, error) {
	query, args, err := qb.Select("*").From("user_votes").
		Where(qb.Eq("user_id", userID), qb.Eq("poll_id", pollID)).
		ToSQL()
	if err != nil {
		return poll.Vote{}, false, fmt.Errorf("build select vote query: %w", err)
	}

	var row voteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return poll.Vote{}, false, nil
		}
		return poll.Vote{}, false, fmt.Errorf("get vote: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *VoteRepository) Insert(ctx context.Context, v poll.Vote) error {
	query, args, err := qb.InsertInto("user_votes").
		Columns("user_id", "poll_id", "choice", "voted_at").
		Values(v.UserID, v.PollID, v.Choice, v.VotedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert vote query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}

func (r *VoteRepository) Counts(ctx context.Context, pollID string) (poll.Counts, error) {
	query := `SELECT
    COUNT(*) FILTER (WHERE choice) AS yes,
    COUNT(*) FILTER (WHERE NOT choice) AS no
FROM user_votes WHERE poll_id = $1`

	var row struct {
		Yes int `db:"yes"`
		No  int `db:"no"`
	}
	if err := r.db.GetContext(ctx, &row, query, pollID); err != nil {
		return poll.Counts{}, fmt.Errorf("count votes: %w", err)
	}
	return poll.Counts{Yes: row.Yes, No: row.No}, nil
}
