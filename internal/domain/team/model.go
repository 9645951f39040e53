package team

import "time"

// PlaceholderID is the reserved team standing in for "opponent not yet
// determined" in bracket-style rounds.
const PlaceholderID int64 = 5251

// NoGroup is the sentinel group label for teams without a group assignment.
const NoGroup = "None"

// Team is one club from the results feed plus its league-table stats.
// Name, icon URL and icon path are locally curated after the first insert
// and deliberately not overwritten by later sync passes.
type Team struct {
	ID        int64
	Name      string
	ShortName string
	IconURL   string
	IconPath  string
	GroupName string

	Points        int
	Goals         int
	OpponentGoals int
	Matches       int
	Won           int
	Lost          int
	Draw          int
	GoalDiff      int
	Rank          int

	UpdatedAt time.Time
}

// Placeholder returns the reserved dummy team.
func Placeholder(at time.Time) Team {
	return Team{
		ID:        PlaceholderID,
		Name:      "-",
		ShortName: "-",
		GroupName: NoGroup,
		UpdatedAt: at,
	}
}
