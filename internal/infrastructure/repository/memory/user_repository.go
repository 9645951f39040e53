package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bolzplatz/tippspiel/internal/domain/user"
)

type UserRepository struct {
	mu     sync.RWMutex
	items  map[int64]user.User
	nextID int64
}

func NewUserRepository(users []user.User) *UserRepository {
	items := make(map[int64]user.User, len(users))
	var maxID int64
	for _, u := range users {
		items[u.ID] = u
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return &UserRepository{items: items, nextID: maxID + 1}
}

func (r *UserRepository) Create(_ context.Context, u user.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Username == u.Username {
			return 0, user.ErrUsernameTaken
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.items[u.ID] = u
	return u.ID, nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	return u, ok, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Username == username {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}

func (r *UserRepository) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return nil
	}
	u.PasswordHash = hash
	r.items[id] = u
	return nil
}

func (r *UserRepository) UpdateUsername(_ context.Context, id int64, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for otherID, other := range r.items {
		if otherID != id && other.Username == username {
			return user.ErrUsernameTaken
		}
	}
	u, ok := r.items[id]
	if !ok {
		return nil
	}
	u.Username = username
	r.items[id] = u
	return nil
}

func (r *UserRepository) UpdateAggregates(_ context.Context, totals []user.Aggregate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, u := range r.items {
		u.TotalPoints = 0
		u.CorrectResult = 0
		u.CorrectGoalDiff = 0
		u.CorrectTendency = 0
		r.items[id] = u
	}
	for _, t := range totals {
		u, ok := r.items[t.UserID]
		if !ok {
			continue
		}
		u.TotalPoints = t.TotalPoints
		u.CorrectResult = t.CorrectResult
		u.CorrectGoalDiff = t.CorrectGoalDiff
		u.CorrectTendency = t.CorrectTendency
		r.items[t.UserID] = u
	}
	return nil
}

func (r *UserRepository) ListRanked(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.CorrectResult != b.CorrectResult {
			return a.CorrectResult > b.CorrectResult
		}
		if a.CorrectGoalDiff != b.CorrectGoalDiff {
			return a.CorrectGoalDiff > b.CorrectGoalDiff
		}
		if a.CorrectTendency != b.CorrectTendency {
			return a.CorrectTendency > b.CorrectTendency
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}
