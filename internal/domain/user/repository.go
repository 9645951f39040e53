package user

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ErrUsernameTaken is returned on create or rename when the username is
// already in use.
var ErrUsernameTaken = errors.New("username already taken")

// Repository persists users and their leaderboard aggregates.
type Repository interface {
	// Create inserts the user and returns the generated id.
	Create(ctx context.Context, u User) (int64, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	Count(ctx context.Context) (int, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdateUsername(ctx context.Context, id int64, username string) error
	// UpdateAggregates resets every user's counters to zero and then
	// applies the given totals, in a single transaction. Users without an
	// entry end up at zero rather than keeping stale values.
	UpdateAggregates(ctx context.Context, totals []Aggregate) error
	// ListRanked orders by total points, then exact results, then goal
	// differences, then tendencies, all descending.
	ListRanked(ctx context.Context) ([]User, error)
	// Delete removes the user together with their predictions and votes.
	Delete(ctx context.Context, id int64) error
}
