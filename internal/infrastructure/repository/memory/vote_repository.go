package memory

import (
	"context"
	"sync"

	"github.com/bolzplatz/tippspiel/internal/domain/poll"
)

type VoteRepository struct {
	mu     sync.RWMutex
	items  map[int64]poll.Vote
	nextID int64
}

func NewVoteRepository() *VoteRepository {
	return &VoteRepository{items: make(map[int64]poll.Vote), nextID: 1}
}

func (r *VoteRepository) GetByUserAndPoll(_ context.Context, userID int64, pollID string) (poll.Vote, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.items {
		if v.UserID == userID && v.PollID == pollID {
			return v, true, nil
		}
	}
	return poll.Vote{}, false, nil
}

func (r *VoteRepository) Insert(_ context.Context, v poll.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v.ID = r.nextID
	r.nextID++
	r.items[v.ID] = v
	return nil
}

func (r *VoteRepository) Counts(_ context.Context, pollID string) (poll.Counts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var counts poll.Counts
	for _, v := range r.items {
		if v.PollID != pollID {
			continue
		}
		if v.Choice {
			counts.Yes++
		} else {
			counts.No++
		}
	}
	return counts, nil
}
