package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/poll"
)

// PollResult is a tally plus the caller's own vote, if any.
type PollResult struct {
	PollID string `json:"poll_id"`
	Yes    int    `json:"yes"`
	No     int    `json:"no"`
	Voted  bool   `json:"voted"`
	Choice *bool  `json:"choice,omitempty"`
}

// PollService handles the yes/no side polls. One vote per user and poll,
// votes are final.
type PollService struct {
	voteRepo poll.Repository
	now      func() time.Time
}

func NewPollService(voteRepo poll.Repository) *PollService {
	return &PollService{voteRepo: voteRepo, now: time.Now}
}

// Vote records the user's answer. A second vote on the same poll is
// rejected.
func (s *PollService) Vote(ctx context.Context, userID int64, pollID string, choice bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PollService.Vote")
	defer span.End()

	pollID = strings.TrimSpace(pollID)
	if pollID == "" {
		return fmt.Errorf("%w: empty poll id", ErrInvalidInput)
	}

	_, voted, err := s.voteRepo.GetByUserAndPoll(ctx, userID, pollID)
	if err != nil {
		return fmt.Errorf("get vote: %w", err)
	}
	if voted {
		return fmt.Errorf("%w: already voted on poll %s", ErrInvalidInput, pollID)
	}

	if err := s.voteRepo.Insert(ctx, poll.Vote{
		UserID:  userID,
		PollID:  pollID,
		Choice:  choice,
		VotedAt: s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}

// Results returns the tally together with the caller's own vote.
func (s *PollService) Results(ctx context.Context, userID int64, pollID string) (PollResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PollService.Results")
	defer span.End()

	counts, err := s.voteRepo.Counts(ctx, pollID)
	if err != nil {
		return PollResult{}, fmt.Errorf("count votes: %w", err)
	}

	result := PollResult{PollID: pollID, Yes: counts.Yes, No: counts.No}
	own, voted, err := s.voteRepo.GetByUserAndPoll(ctx, userID, pollID)
	if err != nil {
		return PollResult{}, fmt.Errorf("get vote: %w", err)
	}
	if voted {
		choice := own.Choice
		result.Voted = true
		result.Choice = &choice
	}
	return result, nil
}
