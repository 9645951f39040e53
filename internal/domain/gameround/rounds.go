package gameround

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/bolzplatz/tippspiel/internal/domain/match"
)

// Window is a half-open time range [Start, End) covering one game round.
type Window struct {
	Round int
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Calendar is the ordered, non-overlapping set of round windows for a
// season. Rounds are numbered from 1.
type Calendar struct {
	windows []Window
}

// NewCalendar builds a calendar from start/end pairs. Windows must be
// ordered and must not overlap; adjacent windows may share a boundary.
func NewCalendar(windows []Window) (*Calendar, error) {
	if len(windows) == 0 {
		return nil, errors.New("gameround: calendar needs at least one window")
	}
	for i, w := range windows {
		if !w.Start.Before(w.End) {
			return nil, errors.Newf("gameround: window %d has start >= end", i+1)
		}
		if i > 0 && w.Start.Before(windows[i-1].End) {
			return nil, errors.Newf("gameround: window %d overlaps window %d", i+1, i)
		}
	}
	out := make([]Window, len(windows))
	copy(out, windows)
	for i := range out {
		out[i].Round = i + 1
	}
	return &Calendar{windows: out}, nil
}

// DefaultCalendar is the 2024/25 season split into five rounds of two
// calendar months each.
func DefaultCalendar() *Calendar {
	mk := func(y int, m time.Month) time.Time {
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	}
	cal, err := NewCalendar([]Window{
		{Start: mk(2024, time.August), End: mk(2024, time.October)},
		{Start: mk(2024, time.October), End: mk(2024, time.December)},
		{Start: mk(2024, time.December), End: mk(2025, time.February)},
		{Start: mk(2025, time.February), End: mk(2025, time.April)},
		{Start: mk(2025, time.April), End: mk(2025, time.June)},
	})
	if err != nil {
		panic(err)
	}
	return cal
}

// Len returns the number of rounds.
func (c *Calendar) Len() int { return len(c.windows) }

// Window returns the window for a 1-based round number.
func (c *Calendar) Window(round int) (Window, error) {
	if round < 1 || round > len(c.windows) {
		return Window{}, errors.Newf("gameround: round %d out of range 1..%d", round, len(c.windows))
	}
	return c.windows[round-1], nil
}

// RoundFor returns the round whose window contains t, or false when t is
// outside the season.
func (c *Calendar) RoundFor(t time.Time) (int, bool) {
	for _, w := range c.windows {
		if w.Contains(t) {
			return w.Round, true
		}
	}
	return 0, false
}

// ClosestRound returns the round containing t, or the nearest round when t
// lies before the season start or after its end.
func (c *Calendar) ClosestRound(t time.Time) int {
	if r, ok := c.RoundFor(t); ok {
		return r
	}
	if t.Before(c.windows[0].Start) {
		return 1
	}
	return len(c.windows)
}

// Prev returns the previous round, clamped at the first.
func (c *Calendar) Prev(round int) int {
	if round <= 1 {
		return 1
	}
	if round > len(c.windows) {
		return len(c.windows)
	}
	return round - 1
}

// Next returns the next round, clamped at the last.
func (c *Calendar) Next(round int) int {
	if round >= len(c.windows) {
		return len(c.windows)
	}
	if round < 1 {
		return 1
	}
	return round + 1
}

// ClosestMatch returns the index into matches of the match whose kickoff is
// nearest to t. Ties go to the earlier slice position. Returns -1 for an
// empty slice.
func ClosestMatch(t time.Time, matches []match.Match) int {
	best := -1
	var bestDist time.Duration
	for i, m := range matches {
		d := t.Sub(m.KickoffAt)
		if d < 0 {
			d = -d
		}
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
