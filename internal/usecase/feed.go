package usecase

import (
	"context"
	"time"
)

// FeedTeam is a team as described by the score feed.
type FeedTeam struct {
	ExternalID int64
	Name       string
	ShortName  string
	IconURL    string
	GroupName  string
}

// FeedMatch is a fixture as described by the score feed. Scores are nil
// until the feed reports a usable result.
type FeedMatch struct {
	ExternalID   int64
	Round        int
	GroupName    string
	Team1        FeedTeam
	Team2        FeedTeam
	Team1Score   *int
	Team2Score   *int
	KickoffAt    time.Time
	Finished     bool
	LastUpdateAt time.Time
}

// FeedTableRow is one standing row of the league table.
type FeedTableRow struct {
	TeamExternalID int64
	TeamName       string
	Points         int
	Goals          int
	OpponentGoals  int
	Matches        int
	Won            int
	Lost           int
	Draw           int
	GoalDiff       int
}

// FeedProvider is the read side of the external score feed.
type FeedProvider interface {
	// MatchesByCompetition fetches all matches of a competition season,
	// optionally narrowed by a team filter.
	MatchesByCompetition(ctx context.Context, competition, season, filter string) ([]FeedMatch, error)
	// MatchByID fetches a single match by its feed id.
	MatchByID(ctx context.Context, id int64) (FeedMatch, error)
	Table(ctx context.Context, competition, season string) ([]FeedTableRow, error)
}
