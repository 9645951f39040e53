package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/prediction"
)

// PredictionRepository keeps predictions in memory. It needs the match
// repository to answer kickoff-range and finished-match queries.
type PredictionRepository struct {
	mu      sync.RWMutex
	items   map[int64]prediction.Prediction
	nextID  int64
	matches *MatchRepository
}

func NewPredictionRepository(matches *MatchRepository) *PredictionRepository {
	return &PredictionRepository{
		items:   make(map[int64]prediction.Prediction),
		nextID:  1,
		matches: matches,
	}
}

func (r *PredictionRepository) GetByUserAndMatch(_ context.Context, userID, matchID int64) (prediction.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if p.UserID == userID && p.MatchID == matchID {
			return p, true, nil
		}
	}
	return prediction.Prediction{}, false, nil
}

func (r *PredictionRepository) ListByUser(_ context.Context, userID int64) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(p prediction.Prediction) bool { return p.UserID == userID }), nil
}

func (r *PredictionRepository) ListByMatch(_ context.Context, matchID int64) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(p prediction.Prediction) bool { return p.MatchID == matchID }), nil
}

func (r *PredictionRepository) ListByKickoffRange(ctx context.Context, from, to time.Time) ([]prediction.Prediction, error) {
	matches, err := r.matches.ListByKickoffRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	inRange := make(map[int64]bool, len(matches))
	for _, m := range matches {
		inRange[m.ID] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(p prediction.Prediction) bool { return inRange[p.MatchID] }), nil
}

func (r *PredictionRepository) CountByUser(_ context.Context, userID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, p := range r.items {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *PredictionRepository) CountRatedByUser(ctx context.Context, userID int64) (int, error) {
	r.mu.RLock()
	preds := r.sorted(func(p prediction.Prediction) bool { return p.UserID == userID })
	r.mu.RUnlock()

	count := 0
	for _, p := range preds {
		m, found, err := r.matches.GetByID(ctx, p.MatchID)
		if err != nil {
			return 0, err
		}
		if found && m.Finished {
			count++
		}
	}
	return count, nil
}

func (r *PredictionRepository) Insert(_ context.Context, p prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	r.items[p.ID] = p
	return nil
}

func (r *PredictionRepository) Update(_ context.Context, p prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[p.ID]; !ok {
		return nil
	}
	r.items[p.ID] = p
	return nil
}

func (r *PredictionRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *PredictionRepository) SetPointsByMatch(_ context.Context, matchID int64, pointsByPrediction map[int64]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, points := range pointsByPrediction {
		p, ok := r.items[id]
		if !ok || p.MatchID != matchID {
			continue
		}
		p.Points = points
		r.items[id] = p
	}
	return nil
}

func (r *PredictionRepository) AggregateTotals(_ context.Context) ([]prediction.UserTotals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser := make(map[int64]*prediction.UserTotals)
	for _, p := range r.items {
		totals, ok := byUser[p.UserID]
		if !ok {
			totals = &prediction.UserTotals{UserID: p.UserID}
			byUser[p.UserID] = totals
		}
		totals.TotalPoints += p.Points
		switch p.Points {
		case prediction.PointsExactScore:
			totals.CorrectResult++
		case prediction.PointsGoalDiff:
			totals.CorrectGoalDiff++
		case prediction.PointsTendency:
			totals.CorrectTendency++
		}
	}

	out := make([]prediction.UserTotals, 0, len(byUser))
	for _, totals := range byUser {
		out = append(out, *totals)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *PredictionRepository) sorted(keep func(prediction.Prediction) bool) []prediction.Prediction {
	out := make([]prediction.Prediction, 0, len(r.items))
	for _, p := range r.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
