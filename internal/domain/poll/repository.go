package poll

import "context"

type Repository interface {
	GetByUserAndPoll(ctx context.Context, userID int64, pollID string) (Vote, bool, error)
	Insert(ctx context.Context, v Vote) error
	Counts(ctx context.Context, pollID string) (Counts, error)
}
