package team

import (
	"context"
	"time"
)

// Repository persists teams and their league table standing.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
	ListByRank(ctx context.Context) ([]Team, error)
	Insert(ctx context.Context, t Team) error
	// UpdateGroupName changes only the group assignment. Icon fields and
	// names are curated locally and must survive a feed re-sync.
	UpdateGroupName(ctx context.Context, id int64, groupName string) error
	// UpdateStats replaces the league table columns (points, goals,
	// matches, rank) for every team in the slice.
	UpdateStats(ctx context.Context, teams []Team) error
	// TouchAll stamps updated_at on every row after a successful sync.
	TouchAll(ctx context.Context, at time.Time) error
}
