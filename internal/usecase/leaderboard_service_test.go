package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/gameround"
	"github.com/bolzplatz/tippspiel/internal/domain/match"
	"github.com/bolzplatz/tippspiel/internal/domain/prediction"
	"github.com/bolzplatz/tippspiel/internal/domain/user"
	"github.com/bolzplatz/tippspiel/internal/infrastructure/repository/memory"
	"github.com/bolzplatz/tippspiel/internal/platform/logging"
)

func newLeaderboardFixture(t *testing.T, now time.Time, matches []match.Match, users []user.User) (*LeaderboardService, *memory.PredictionRepository, *memory.MatchRepository) {
	t.Helper()

	matchRepo := memory.NewMatchRepository(matches)
	predictionRepo := memory.NewPredictionRepository(matchRepo)
	userRepo := memory.NewUserRepository(users)

	scoring := NewScoringService(matchRepo, predictionRepo, userRepo, logging.NewNop())
	scoring.now = func() time.Time { return now }

	service := NewLeaderboardService(nil, scoring, matchRepo, predictionRepo, userRepo, gameround.DefaultCalendar(), logging.NewNop())
	service.now = func() time.Time { return now }
	return service, predictionRepo, matchRepo
}

func TestLeaderboardService_Overview(t *testing.T) {
	now := time.Date(2024, 9, 15, 18, 0, 0, 0, time.UTC)
	closedKickoff := now.Add(-3 * time.Hour)

	service, predictionRepo, _ := newLeaderboardFixture(t, now, []match.Match{
		{ID: 1, Team1Score: intPtr(2), Team2Score: intPtr(1), KickoffAt: closedKickoff, Finished: true, League: "bl1"},
		{ID: 2, KickoffAt: now.Add(26 * time.Hour), League: "bl1"},
	}, []user.User{
		{ID: 1, Username: "anna"},
		{ID: 2, Username: "ben"},
	})

	seeds := []prediction.Prediction{
		{UserID: 1, MatchID: 1, Team1Score: 2, Team2Score: 1, GoalDiff: 1, Winner: prediction.WinnerTeam1},
		{UserID: 2, MatchID: 1, Team1Score: 0, Team2Score: 1, GoalDiff: -1, Winner: prediction.WinnerTeam2},
		{UserID: 1, MatchID: 2, Team1Score: 1, Team2Score: 0, GoalDiff: 1, Winner: prediction.WinnerTeam1},
	}
	for _, p := range seeds {
		if err := predictionRepo.Insert(t.Context(), p); err != nil {
			t.Fatalf("seed prediction: %v", err)
		}
	}

	board, err := service.Overview(t.Context(), 0)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	// Round 1 covers August and September 2024.
	if board.Round != 1 {
		t.Fatalf("round: got %d, want 1", board.Round)
	}
	if board.Rounds != 5 || board.PrevRound != 1 || board.NextRound != 2 {
		t.Fatalf("round navigation wrong: %+v", board)
	}
	if board.ClosestMatchNo != 1 {
		t.Fatalf("closest match: got %d, want 1", board.ClosestMatchNo)
	}

	// The scoring pass before rendering awarded anna 4 points.
	if len(board.Entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(board.Entries))
	}
	if board.Entries[0].Username != "anna" || board.Entries[0].TotalPoints != 4 || board.Entries[0].RoundPoints != 4 {
		t.Fatalf("entry 0 wrong: %+v", board.Entries[0])
	}
	if board.Entries[0].Rank != 1 || board.Entries[1].Rank != 2 {
		t.Fatalf("ranks wrong: %+v", board.Entries)
	}

	if len(board.Matches) != 2 {
		t.Fatalf("matches: got %d, want 2", len(board.Matches))
	}
	if len(board.Matches[0].Tips) != 2 {
		t.Fatalf("closed match must reveal tips, got %d", len(board.Matches[0].Tips))
	}
	if len(board.Matches[1].Tips) != 0 {
		t.Fatal("open match must hide tips")
	}

	if board.LastEvaluatedAt == nil || !board.LastEvaluatedAt.Equal(now) {
		t.Fatalf("last evaluation: got %v, want %v", board.LastEvaluatedAt, now)
	}
}

func TestLeaderboardService_Overview_RejectsOutOfRangeRound(t *testing.T) {
	now := time.Date(2024, 9, 15, 18, 0, 0, 0, time.UTC)
	service, _, _ := newLeaderboardFixture(t, now, nil, nil)

	if _, err := service.Overview(t.Context(), 99); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("round 99: expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.Overview(t.Context(), -3); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("round -3: expected ErrInvalidInput, got %v", err)
	}

	board, err := service.Overview(t.Context(), 2)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if board.Round != 2 {
		t.Fatalf("round: got %d, want 2", board.Round)
	}
	if board.ClosestMatchNo != 0 {
		t.Fatalf("empty round: closest match must be 0, got %d", board.ClosestMatchNo)
	}
}
