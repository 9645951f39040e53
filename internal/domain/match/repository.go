package match

import (
	"context"
	"time"
)

// Repository exposes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	List(ctx context.Context) ([]Match, error)
	// ListByKickoffRange returns matches kicking off inside the half-open
	// interval [from, to), ordered by kickoff.
	ListByKickoffRange(ctx context.Context, from, to time.Time) ([]Match, error)
	// ListUnderway returns matches whose kickoff has passed and which are
	// not flagged finished.
	ListUnderway(ctx context.Context, now time.Time) ([]Match, error)
	// ListNeedingEvaluation returns matches with unevaluated predictions:
	// either finished, or underway (re-scored every pass while live).
	ListNeedingEvaluation(ctx context.Context, now time.Time) ([]Match, error)

	// Upsert inserts the match or overwrites its feed-owned fields
	// (scores, kickoff, finished flag, teams, round, group, timestamps)
	// keyed by external id. Evaluation state is preserved on update.
	Upsert(ctx context.Context, m Match) error
	// UpdateScores overwrites just the score pair and update timestamp,
	// used by the live polling path.
	UpdateScores(ctx context.Context, id int64, team1Score, team2Score *int, finished bool, lastUpdateAt time.Time) error
	// SetEvaluation stamps the evaluation time and, when evaluated is
	// true, flips predictions_evaluated. The flag only ever goes 0 -> 1.
	SetEvaluation(ctx context.Context, id int64, evaluated bool, at time.Time) error

	CountFinished(ctx context.Context) (int, error)
	LastEvaluatedAt(ctx context.Context) (*time.Time, error)
	LastUpdatedAt(ctx context.Context) (*time.Time, error)
}
