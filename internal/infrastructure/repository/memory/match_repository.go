package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[int64]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[int64]match.Match, len(matches))
	for _, m := range matches {
		items[m.ID] = m
	}
	return &MatchRepository{items: items}
}

func (r *MatchRepository) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	return m, ok, nil
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedByKickoff(func(match.Match) bool { return true }), nil
}

func (r *MatchRepository) ListByKickoffRange(_ context.Context, from, to time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedByKickoff(func(m match.Match) bool {
		return !m.KickoffAt.Before(from) && m.KickoffAt.Before(to)
	}), nil
}

func (r *MatchRepository) ListUnderway(_ context.Context, now time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedByKickoff(func(m match.Match) bool {
		return m.IsUnderway(now)
	}), nil
}

func (r *MatchRepository) ListNeedingEvaluation(_ context.Context, now time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedByKickoff(func(m match.Match) bool {
		if m.Evaluated {
			return false
		}
		return m.Finished || m.IsUnderway(now)
	}), nil
}

func (r *MatchRepository) Upsert(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[m.ID]; ok {
		m.Evaluated = existing.Evaluated
		m.EvaluatedAt = existing.EvaluatedAt
	}
	r.items[m.ID] = m
	return nil
}

func (r *MatchRepository) UpdateScores(_ context.Context, id int64, team1Score, team2Score *int, finished bool, lastUpdateAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[id]
	if !ok {
		return nil
	}
	m.Team1Score = team1Score
	m.Team2Score = team2Score
	m.Finished = finished
	m.LastUpdateAt = lastUpdateAt
	r.items[id] = m
	return nil
}

func (r *MatchRepository) SetEvaluation(_ context.Context, id int64, evaluated bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[id]
	if !ok {
		return nil
	}
	if evaluated {
		m.Evaluated = true
	}
	stamp := at
	m.EvaluatedAt = &stamp
	r.items[id] = m
	return nil
}

func (r *MatchRepository) CountFinished(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, m := range r.items {
		if m.Finished {
			count++
		}
	}
	return count, nil
}

func (r *MatchRepository) LastEvaluatedAt(_ context.Context) (*time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *time.Time
	for _, m := range r.items {
		if m.EvaluatedAt == nil {
			continue
		}
		if latest == nil || m.EvaluatedAt.After(*latest) {
			at := *m.EvaluatedAt
			latest = &at
		}
	}
	return latest, nil
}

func (r *MatchRepository) LastUpdatedAt(_ context.Context) (*time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *time.Time
	for _, m := range r.items {
		if m.LastUpdateAt.IsZero() {
			continue
		}
		if latest == nil || m.LastUpdateAt.After(*latest) {
			at := m.LastUpdateAt
			latest = &at
		}
	}
	return latest, nil
}

func (r *MatchRepository) sortedByKickoff(keep func(match.Match) bool) []match.Match {
	out := make([]match.Match, 0, len(r.items))
	for _, m := range r.items {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].KickoffAt.Before(out[j].KickoffAt)
	})
	return out
}
