package gameround

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolzplatz/tippspiel/internal/domain/match"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewCalendarValidation(t *testing.T) {
	_, err := NewCalendar(nil)
	assert.Error(t, err)

	_, err = NewCalendar([]Window{
		{Start: date(2024, 10, 1), End: date(2024, 8, 1)},
	})
	assert.Error(t, err)

	_, err = NewCalendar([]Window{
		{Start: date(2024, 8, 1), End: date(2024, 10, 15)},
		{Start: date(2024, 10, 1), End: date(2024, 12, 1)},
	})
	assert.Error(t, err)

	cal, err := NewCalendar([]Window{
		{Start: date(2024, 8, 1), End: date(2024, 10, 1)},
		{Start: date(2024, 10, 1), End: date(2024, 12, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, cal.Len())
}

func TestRoundForHalfOpenBoundaries(t *testing.T) {
	cal := DefaultCalendar()

	r, ok := cal.RoundFor(date(2024, 8, 1))
	require.True(t, ok)
	assert.Equal(t, 1, r)

	// The shared boundary belongs to the later window.
	r, ok = cal.RoundFor(date(2024, 10, 1))
	require.True(t, ok)
	assert.Equal(t, 2, r)

	r, ok = cal.RoundFor(date(2025, 5, 31))
	require.True(t, ok)
	assert.Equal(t, 5, r)

	_, ok = cal.RoundFor(date(2025, 6, 1))
	assert.False(t, ok)

	_, ok = cal.RoundFor(date(2024, 7, 31))
	assert.False(t, ok)
}

func TestClosestRoundClamps(t *testing.T) {
	cal := DefaultCalendar()
	assert.Equal(t, 1, cal.ClosestRound(date(2024, 6, 1)))
	assert.Equal(t, 5, cal.ClosestRound(date(2025, 7, 1)))
	assert.Equal(t, 3, cal.ClosestRound(date(2025, 1, 15)))
}

func TestPrevNextClampWithoutWrapping(t *testing.T) {
	cal := DefaultCalendar()
	assert.Equal(t, 1, cal.Prev(1))
	assert.Equal(t, 1, cal.Prev(2))
	assert.Equal(t, 5, cal.Next(5))
	assert.Equal(t, 5, cal.Next(4))
	assert.Equal(t, 5, cal.Prev(99))
	assert.Equal(t, 1, cal.Next(0))
}

func TestWindowOutOfRange(t *testing.T) {
	cal := DefaultCalendar()
	_, err := cal.Window(0)
	assert.Error(t, err)
	_, err = cal.Window(6)
	assert.Error(t, err)
	w, err := cal.Window(3)
	require.NoError(t, err)
	assert.Equal(t, 3, w.Round)
}

func TestClosestMatchPrefersEarlierOnTie(t *testing.T) {
	now := date(2024, 9, 10)
	matches := []match.Match{
		{ID: 1, KickoffAt: now.Add(-48 * time.Hour)},
		{ID: 2, KickoffAt: now.Add(-2 * time.Hour)},
		{ID: 3, KickoffAt: now.Add(2 * time.Hour)},
	}
	assert.Equal(t, 1, ClosestMatch(now, matches))
	assert.Equal(t, -1, ClosestMatch(now, nil))
}
