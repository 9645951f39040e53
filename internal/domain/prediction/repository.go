package prediction

import (
	"context"
	"time"
)

// Repository exposes prediction persistence needs from use cases.
type Repository interface {
	GetByUserAndMatch(ctx context.Context, userID, matchID int64) (Prediction, bool, error)
	ListByUser(ctx context.Context, userID int64) ([]Prediction, error)
	ListByMatch(ctx context.Context, matchID int64) ([]Prediction, error)
	// ListByKickoffRange returns predictions whose match kicks off inside
	// the half-open interval [from, to).
	ListByKickoffRange(ctx context.Context, from, to time.Time) ([]Prediction, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	// CountRatedByUser counts the user's predictions on finished matches.
	CountRatedByUser(ctx context.Context, userID int64) (int, error)

	Insert(ctx context.Context, p Prediction) error
	Update(ctx context.Context, p Prediction) error
	Delete(ctx context.Context, id int64) error

	// SetPointsByMatch overwrites the awarded points of the given
	// predictions in one set-based batch. Points are replaced, never
	// accumulated.
	SetPointsByMatch(ctx context.Context, matchID int64, pointsByPrediction map[int64]int) error

	// AggregateTotals computes per-user totals across the whole table.
	AggregateTotals(ctx context.Context) ([]UserTotals, error)
}
