package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/match"
	"github.com/bolzplatz/tippspiel/internal/domain/prediction"
	"github.com/bolzplatz/tippspiel/internal/domain/user"
	"github.com/bolzplatz/tippspiel/internal/infrastructure/repository/memory"
)

func TestDashboardService_Insights(t *testing.T) {
	now := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

	matchRepo := memory.NewMatchRepository([]match.Match{
		{ID: 1, KickoffAt: now.Add(-72 * time.Hour), Finished: true},
		{ID: 2, KickoffAt: now.Add(-48 * time.Hour), Finished: true},
		{ID: 3, KickoffAt: now.Add(-24 * time.Hour), Finished: true},
		{ID: 4, KickoffAt: now.Add(24 * time.Hour)},
	})
	predictionRepo := memory.NewPredictionRepository(matchRepo)
	userRepo := memory.NewUserRepository([]user.User{
		{ID: 1, Username: "anna", TotalPoints: 7, CorrectResult: 1, CorrectTendency: 1},
		{ID: 2, Username: "ben", TotalPoints: 12, CorrectResult: 3},
	})

	seeds := []prediction.Prediction{
		{UserID: 1, MatchID: 1, Points: 4},
		{UserID: 1, MatchID: 2, Points: 2},
		{UserID: 1, MatchID: 3, Points: 0},
		// Open match, counts toward total but not rated.
		{UserID: 1, MatchID: 4},
	}
	for _, p := range seeds {
		if err := predictionRepo.Insert(t.Context(), p); err != nil {
			t.Fatalf("seed prediction: %v", err)
		}
	}

	service := NewDashboardService(matchRepo, predictionRepo, userRepo)

	insights, err := service.Insights(t.Context(), 1)
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}

	if insights.Username != "anna" || insights.Leader != "ben" {
		t.Fatalf("names wrong: %+v", insights)
	}
	if insights.Rank != 2 || insights.UserCount != 2 {
		t.Fatalf("rank wrong: %+v", insights)
	}
	if insights.PredictionsTotal != 4 || insights.PredictionsRated != 3 {
		t.Fatalf("counts wrong: %+v", insights)
	}
	if insights.MissedGames != 0 {
		t.Fatalf("missed games: got %d, want 0", insights.MissedGames)
	}
	if insights.WrongPredictions != 1 {
		t.Fatalf("wrong predictions: got %d, want 1", insights.WrongPredictions)
	}
	if insights.CorrectResultPct != 33 || insights.CorrectTendencyPct != 33 || insights.WrongPredictionsPct != 33 {
		t.Fatalf("percentages wrong: %+v", insights)
	}
	if insights.PointsPerTip != 2.33 {
		t.Fatalf("points per tip: got %v, want 2.33", insights.PointsPerTip)
	}
}

func TestDashboardService_Insights_NothingRated(t *testing.T) {
	matchRepo := memory.NewMatchRepository(nil)
	predictionRepo := memory.NewPredictionRepository(matchRepo)
	userRepo := memory.NewUserRepository([]user.User{{ID: 1, Username: "anna"}})

	service := NewDashboardService(matchRepo, predictionRepo, userRepo)

	insights, err := service.Insights(t.Context(), 1)
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if insights.PointsPerTip != 0 || insights.CorrectResultPct != 0 {
		t.Fatalf("ratios must be zero without rated predictions: %+v", insights)
	}

	if _, err := service.Insights(t.Context(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user: expected ErrNotFound, got %v", err)
	}
}
