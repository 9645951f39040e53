package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/gameround"
	"github.com/bolzplatz/tippspiel/internal/domain/match"
	"github.com/bolzplatz/tippspiel/internal/domain/prediction"
	"github.com/bolzplatz/tippspiel/internal/infrastructure/repository/memory"
	"github.com/bolzplatz/tippspiel/internal/platform/logging"
)

func newPredictionFixture(t *testing.T, now time.Time, matches []match.Match) (*PredictionService, *memory.MatchRepository, *memory.PredictionRepository) {
	t.Helper()

	matchRepo := memory.NewMatchRepository(matches)
	predictionRepo := memory.NewPredictionRepository(matchRepo)
	service := NewPredictionService(matchRepo, predictionRepo, gameround.DefaultCalendar(), []string{"dfb"}, logging.NewNop())
	service.now = func() time.Time { return now }
	return service, matchRepo, predictionRepo
}

func TestPredictionService_SubmitBatch_SavesOpenMatch(t *testing.T) {
	now := time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)
	service, _, predictionRepo := newPredictionFixture(t, now, []match.Match{
		{ID: 1, Round: 3, KickoffAt: now.Add(2 * time.Hour), League: "bl1"},
	})

	result, err := service.SubmitBatch(t.Context(), 7, 1, []ScoreInput{
		{MatchID: 1, Team1Score: "2", Team2Score: "1"},
	})
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	if result.Saved != 1 {
		t.Fatalf("saved: got %d, want 1", result.Saved)
	}
	if len(result.Messages) != 1 || result.Messages[0] != MsgPredictionsSaved {
		t.Fatalf("messages: got %v", result.Messages)
	}

	p, found, _ := predictionRepo.GetByUserAndMatch(t.Context(), 7, 1)
	if !found {
		t.Fatal("prediction not stored")
	}
	if p.Team1Score != 2 || p.Team2Score != 1 || p.GoalDiff != 1 || p.Winner != prediction.WinnerTeam1 {
		t.Fatalf("stored fields wrong: %+v", p)
	}
	if !p.PredictedAt.Equal(now) {
		t.Fatalf("timestamp: got %v, want %v", p.PredictedAt, now)
	}
	// The stored matchday comes from the match, not the page's calendar round.
	if p.Round != 3 {
		t.Fatalf("round: got %d, want 3", p.Round)
	}
}

func TestPredictionService_SubmitBatch_ClosedMatchIsIgnored(t *testing.T) {
	now := time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)
	service, _, predictionRepo := newPredictionFixture(t, now, []match.Match{
		// Kickoff exactly now counts as closed.
		{ID: 1, KickoffAt: now, League: "bl1"},
		{ID: 2, KickoffAt: now.Add(-time.Hour), League: "bl1"},
	})

	result, err := service.SubmitBatch(t.Context(), 7, 1, []ScoreInput{
		{MatchID: 1, Team1Score: "2", Team2Score: "1"},
		{MatchID: 2, Team1Score: "0", Team2Score: "3"},
	})
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	if result.Saved != 0 {
		t.Fatalf("saved: got %d, want 0", result.Saved)
	}
	if len(result.Messages) != 1 || result.Messages[0] != MsgNoChanges {
		t.Fatalf("messages: got %v", result.Messages)
	}
	if count, _ := predictionRepo.CountByUser(t.Context(), 7); count != 0 {
		t.Fatalf("stored predictions: got %d, want 0", count)
	}
}

func TestPredictionService_SubmitBatch_MalformedRowsAreSkipped(t *testing.T) {
	now := time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)
	service, _, predictionRepo := newPredictionFixture(t, now, []match.Match{
		{ID: 1, KickoffAt: now.Add(time.Hour), League: "bl1"},
		{ID: 2, KickoffAt: now.Add(time.Hour), League: "bl1"},
		{ID: 3, KickoffAt: now.Add(time.Hour), League: "bl1"},
		{ID: 4, KickoffAt: now.Add(time.Hour), League: "bl1"},
	})

	result, err := service.SubmitBatch(t.Context(), 7, 1, []ScoreInput{
		{MatchID: 1, Team1Score: "2", Team2Score: ""},
		{MatchID: 2, Team1Score: "abc", Team2Score: "1"},
		{MatchID: 3, Team1Score: "-1", Team2Score: "0"},
		{MatchID: 4, Team1Score: "1", Team2Score: "1"},
	})
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	if result.Saved != 1 {
		t.Fatalf("saved: got %d, want 1 (only the valid draw on bl1)", result.Saved)
	}
	if count, _ := predictionRepo.CountByUser(t.Context(), 7); count != 1 {
		t.Fatalf("stored predictions: got %d, want 1", count)
	}
}

func TestPredictionService_SubmitBatch_RejectsDrawInKnockout(t *testing.T) {
	now := time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)
	service, _, predictionRepo := newPredictionFixture(t, now, []match.Match{
		{ID: 1, KickoffAt: now.Add(time.Hour), League: "dfb"},
	})

	result, err := service.SubmitBatch(t.Context(), 7, 1, []ScoreInput{
		{MatchID: 1, Team1Score: "1", Team2Score: "1"},
	})
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	if !result.DrawRejected {
		t.Fatal("draw on a knockout competition must be rejected")
	}
	if result.Messages[0] != MsgNoDrawAllowed {
		t.Fatalf("messages: got %v", result.Messages)
	}
	if count, _ := predictionRepo.CountByUser(t.Context(), 7); count != 0 {
		t.Fatalf("stored predictions: got %d, want 0", count)
	}
}

func TestPredictionService_SubmitBatch_OneMessagePerBatch(t *testing.T) {
	now := time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)
	service, _, _ := newPredictionFixture(t, now, []match.Match{
		{ID: 1, KickoffAt: now.Add(time.Hour), League: "dfb"},
		{ID: 2, KickoffAt: now.Add(time.Hour), League: "bl1"},
	})

	// Only a rejected draw: the rejection reason is the whole flash.
	result, err := service.SubmitBatch(t.Context(), 7, 1, []ScoreInput{
		{MatchID: 1, Team1Score: "1", Team2Score: "1"},
	})
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	if len(result.Messages) != 1 || result.Messages[0] != MsgNoDrawAllowed {
		t.Fatalf("messages: got %v, want only %q", result.Messages, MsgNoDrawAllowed)
	}

	// A save alongside a rejected draw: the success message wins alone.
	result, err = service.SubmitBatch(t.Context(), 7, 1, []ScoreInput{
		{MatchID: 1, Team1Score: "2", Team2Score: "2"},
		{MatchID: 2, Team1Score: "2", Team2Score: "0"},
	})
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	if !result.DrawRejected || result.Saved != 1 {
		t.Fatalf("result wrong: %+v", result)
	}
	if len(result.Messages) != 1 || result.Messages[0] != MsgPredictionsSaved {
		t.Fatalf("messages: got %v, want only %q", result.Messages, MsgPredictionsSaved)
	}
}

func TestPredictionService_SubmitBatch_UnchangedTipKeepsTimestamp(t *testing.T) {
	first := time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)
	service, _, predictionRepo := newPredictionFixture(t, first, []match.Match{
		{ID: 1, KickoffAt: first.Add(24 * time.Hour), League: "bl1"},
	})

	if _, err := service.SubmitBatch(t.Context(), 7, 1, []ScoreInput{
		{MatchID: 1, Team1Score: "2", Team2Score: "0"},
	}); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	later := first.Add(time.Hour)
	service.now = func() time.Time { return later }

	result, err := service.SubmitBatch(t.Context(), 7, 1, []ScoreInput{
		{MatchID: 1, Team1Score: "2", Team2Score: "0"},
	})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if result.Saved != 0 {
		t.Fatalf("unchanged tip must not count as saved, got %d", result.Saved)
	}

	p, _, _ := predictionRepo.GetByUserAndMatch(t.Context(), 7, 1)
	if !p.PredictedAt.Equal(first) {
		t.Fatalf("timestamp must survive a no-op submit: got %v, want %v", p.PredictedAt, first)
	}

	// A changed tip restamps.
	result, err = service.SubmitBatch(t.Context(), 7, 1, []ScoreInput{
		{MatchID: 1, Team1Score: "3", Team2Score: "0"},
	})
	if err != nil {
		t.Fatalf("third submit: %v", err)
	}
	if result.Saved != 1 {
		t.Fatalf("changed tip must count as saved, got %d", result.Saved)
	}
	p, _, _ = predictionRepo.GetByUserAndMatch(t.Context(), 7, 1)
	if !p.PredictedAt.Equal(later) {
		t.Fatalf("timestamp must restamp on change: got %v, want %v", p.PredictedAt, later)
	}
}

func TestPredictionService_SubmitBatch_BlankPairDeletes(t *testing.T) {
	now := time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)
	service, _, predictionRepo := newPredictionFixture(t, now, []match.Match{
		{ID: 1, KickoffAt: now.Add(time.Hour), League: "bl1"},
	})

	if _, err := service.SubmitBatch(t.Context(), 7, 1, []ScoreInput{
		{MatchID: 1, Team1Score: "1", Team2Score: "0"},
	}); err != nil {
		t.Fatalf("seed submit: %v", err)
	}

	result, err := service.SubmitBatch(t.Context(), 7, 1, []ScoreInput{
		{MatchID: 1, Team1Score: "", Team2Score: ""},
	})
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	if result.Deleted != 1 {
		t.Fatalf("deleted: got %d, want 1", result.Deleted)
	}
	if _, found, _ := predictionRepo.GetByUserAndMatch(t.Context(), 7, 1); found {
		t.Fatal("prediction should be gone")
	}
}

func TestPredictionService_SubmitBatch_InvalidRound(t *testing.T) {
	now := time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)
	service, _, _ := newPredictionFixture(t, now, nil)

	_, err := service.SubmitBatch(t.Context(), 7, 99, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPredictionService_ListRound(t *testing.T) {
	now := time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)
	service, _, predictionRepo := newPredictionFixture(t, now, []match.Match{
		{ID: 1, KickoffAt: now.Add(-time.Hour), League: "bl1"},
		{ID: 2, KickoffAt: now.Add(time.Hour), League: "bl1"},
		// Outside round 1.
		{ID: 3, KickoffAt: time.Date(2024, 11, 1, 15, 30, 0, 0, time.UTC), League: "bl1"},
	})

	if err := predictionRepo.Insert(t.Context(), prediction.Prediction{
		UserID: 7, MatchID: 1, Team1Score: 1, Team2Score: 1,
	}); err != nil {
		t.Fatalf("seed prediction: %v", err)
	}

	views, err := service.ListRound(t.Context(), 7, 1)
	if err != nil {
		t.Fatalf("ListRound: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("views: got %d, want 2", len(views))
	}
	if views[0].Match.ID != 1 || views[0].Open || views[0].Prediction == nil {
		t.Fatalf("view 0 wrong: %+v", views[0])
	}
	if views[1].Match.ID != 2 || !views[1].Open || views[1].Prediction != nil {
		t.Fatalf("view 1 wrong: %+v", views[1])
	}
}
