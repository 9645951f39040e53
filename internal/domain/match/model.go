package match

import "time"

// Match is one fixture from the results feed. IDs come from the external
// provider; negative IDs mark manually entered matches that the
// synchronizer must never overwrite.
type Match struct {
	ID           int64
	Round        int
	Team1ID      int64
	Team2ID      int64
	Team1Score   *int
	Team2Score   *int
	KickoffAt    time.Time
	Finished     bool
	Evaluated    bool
	League       string
	GroupName    string
	LastUpdateAt time.Time
	EvaluatedAt  *time.Time
}

// IsUnderway reports whether the match has kicked off but is not finished.
func (m Match) IsUnderway(now time.Time) bool {
	return !m.KickoffAt.After(now) && !m.Finished
}

// IsOpen reports whether predictions may still be placed: the match is not
// finished and kickoff has not been reached. At kickoff the match closes.
func (m Match) IsOpen(now time.Time) bool {
	return !m.Finished && now.Before(m.KickoffAt)
}

// IsManual reports whether the match was entered by hand rather than
// ingested from the feed.
func (m Match) IsManual() bool {
	return m.ID < 0
}

// HasResult reports whether a real score pair is available to compare
// predictions against.
func (m Match) HasResult() bool {
	return m.Team1Score != nil && m.Team2Score != nil
}
