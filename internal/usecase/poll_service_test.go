package usecase

import (
	"errors"
	"testing"

	"github.com/bolzplatz/tippspiel/internal/infrastructure/repository/memory"
)

func TestPollService_VoteOnce(t *testing.T) {
	service := NewPollService(memory.NewVoteRepository())

	if err := service.Vote(t.Context(), 1, "winterpause", true); err != nil {
		t.Fatalf("Vote: %v", err)
	}
	if err := service.Vote(t.Context(), 2, "winterpause", false); err != nil {
		t.Fatalf("Vote: %v", err)
	}

	if err := service.Vote(t.Context(), 1, "winterpause", false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("second vote: expected ErrInvalidInput, got %v", err)
	}
	if err := service.Vote(t.Context(), 1, "  ", true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank poll id: expected ErrInvalidInput, got %v", err)
	}

	result, err := service.Results(t.Context(), 1, "winterpause")
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if result.Yes != 1 || result.No != 1 {
		t.Fatalf("tally wrong: %+v", result)
	}
	if !result.Voted || result.Choice == nil || !*result.Choice {
		t.Fatalf("own vote wrong: %+v", result)
	}

	result, err = service.Results(t.Context(), 3, "winterpause")
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if result.Voted || result.Choice != nil {
		t.Fatalf("non-voter must not have a choice: %+v", result)
	}
}
