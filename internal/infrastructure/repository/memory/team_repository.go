package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[int64]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[int64]team.Team, len(teams))
	for _, t := range teams {
		items[t.ID] = t
	}
	return &TeamRepository{items: items}
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	return t, ok, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) ListByRank(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TeamRepository) Insert(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[t.ID] = t
	return nil
}

func (r *TeamRepository) UpdateGroupName(_ context.Context, id int64, groupName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok {
		return nil
	}
	t.GroupName = groupName
	r.items[id] = t
	return nil
}

func (r *TeamRepository) UpdateStats(_ context.Context, teams []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, incoming := range teams {
		t, ok := r.items[incoming.ID]
		if !ok {
			continue
		}
		t.Points = incoming.Points
		t.Goals = incoming.Goals
		t.OpponentGoals = incoming.OpponentGoals
		t.Matches = incoming.Matches
		t.Won = incoming.Won
		t.Lost = incoming.Lost
		t.Draw = incoming.Draw
		t.GoalDiff = incoming.GoalDiff
		t.Rank = incoming.Rank
		r.items[incoming.ID] = t
	}
	return nil
}

func (r *TeamRepository) TouchAll(_ context.Context, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.items {
		t.UpdatedAt = at
		r.items[id] = t
	}
	return nil
}
