package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/gameround"
	"github.com/bolzplatz/tippspiel/internal/domain/match"
	"github.com/bolzplatz/tippspiel/internal/domain/prediction"
	"github.com/bolzplatz/tippspiel/internal/domain/user"
	"github.com/bolzplatz/tippspiel/internal/platform/logging"
)

// LeaderboardEntry is one user's row on the standings.
type LeaderboardEntry struct {
	Rank            int    `json:"rank"`
	UserID          int64  `json:"user_id"`
	Username        string `json:"username"`
	TotalPoints     int    `json:"total_points"`
	CorrectResult   int    `json:"correct_result"`
	CorrectGoalDiff int    `json:"correct_goal_diff"`
	CorrectTendency int    `json:"correct_tendency"`
	RoundPoints     int    `json:"round_points"`
}

// LeaderboardTip is one user's revealed prediction on a closed match.
type LeaderboardTip struct {
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	Team1Score int    `json:"team1_score"`
	Team2Score int    `json:"team2_score"`
	Points     int    `json:"points"`
}

// LeaderboardMatch pairs a match of the round with everyone's tips. Tips
// stay hidden while the match is still open.
type LeaderboardMatch struct {
	Match match.Match      `json:"match"`
	Tips  []LeaderboardTip `json:"tips"`
}

// Leaderboard is the full round view.
type Leaderboard struct {
	Round     int `json:"round"`
	Rounds    int `json:"rounds"`
	PrevRound int `json:"prev_round"`
	NextRound int `json:"next_round"`
	// ClosestMatchNo is the 1-based position of the match nearest to now
	// within Matches, 0 when the round has no matches.
	ClosestMatchNo  int                `json:"closest_match_no"`
	Entries         []LeaderboardEntry `json:"entries"`
	Matches         []LeaderboardMatch `json:"matches"`
	LastEvaluatedAt *time.Time         `json:"last_evaluated_at,omitempty"`
}

// LeaderboardService renders the standings for a game round. Every view
// first refreshes live scores and awards any pending points, so the page a
// player sees is never staler than the feed.
type LeaderboardService struct {
	sync           *SyncService
	scoring        *ScoringService
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	userRepo       user.Repository
	calendar       *gameround.Calendar
	logger         *logging.Logger
	now            func() time.Time
}

func NewLeaderboardService(
	syncService *SyncService,
	scoringService *ScoringService,
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	userRepo user.Repository,
	calendar *gameround.Calendar,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		sync:           syncService,
		scoring:        scoringService,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		userRepo:       userRepo,
		calendar:       calendar,
		logger:         logger,
		now:            time.Now,
	}
}

// Overview builds the leaderboard for the requested round. Round 0 resolves
// to the round closest to now; any other out-of-range round is a caller bug
// and fails fast. A feed outage degrades to stored data instead of failing
// the view.
func (s *LeaderboardService) Overview(ctx context.Context, requestedRound int) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Overview")
	defer span.End()

	s.refresh(ctx)

	now := s.now().UTC()
	round := requestedRound
	if round == 0 {
		round = s.calendar.ClosestRound(now)
	}

	window, err := s.calendar.Window(round)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	matches, err := s.matchRepo.ListByKickoffRange(ctx, window.Start, window.End)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list round matches: %w", err)
	}

	roundPreds, err := s.predictionRepo.ListByKickoffRange(ctx, window.Start, window.End)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list round predictions: %w", err)
	}

	ranked, err := s.userRepo.ListRanked(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list ranked users: %w", err)
	}

	usernames := make(map[int64]string, len(ranked))
	roundPoints := make(map[int64]int, len(ranked))
	for _, u := range ranked {
		usernames[u.ID] = u.Username
	}
	predsByMatch := make(map[int64][]prediction.Prediction, len(matches))
	for _, p := range roundPreds {
		roundPoints[p.UserID] += p.Points
		predsByMatch[p.MatchID] = append(predsByMatch[p.MatchID], p)
	}

	entries := make([]LeaderboardEntry, 0, len(ranked))
	for i, u := range ranked {
		entries = append(entries, LeaderboardEntry{
			Rank:            i + 1,
			UserID:          u.ID,
			Username:        u.Username,
			TotalPoints:     u.TotalPoints,
			CorrectResult:   u.CorrectResult,
			CorrectGoalDiff: u.CorrectGoalDiff,
			CorrectTendency: u.CorrectTendency,
			RoundPoints:     roundPoints[u.ID],
		})
	}

	boardMatches := make([]LeaderboardMatch, 0, len(matches))
	for _, m := range matches {
		bm := LeaderboardMatch{Match: m}
		if !m.IsOpen(now) {
			for _, p := range predsByMatch[m.ID] {
				bm.Tips = append(bm.Tips, LeaderboardTip{
					UserID:     p.UserID,
					Username:   usernames[p.UserID],
					Team1Score: p.Team1Score,
					Team2Score: p.Team2Score,
					Points:     p.Points,
				})
			}
		}
		boardMatches = append(boardMatches, bm)
	}

	lastEvaluated, err := s.matchRepo.LastEvaluatedAt(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("read last evaluation: %w", err)
	}

	return Leaderboard{
		Round:           round,
		Rounds:          s.calendar.Len(),
		PrevRound:       s.calendar.Prev(round),
		NextRound:       s.calendar.Next(round),
		ClosestMatchNo:  gameround.ClosestMatch(now, matches) + 1,
		Entries:         entries,
		Matches:         boardMatches,
		LastEvaluatedAt: lastEvaluated,
	}, nil
}

// refresh pulls live scores and awards pending points. Failures are logged
// and swallowed so the board still renders from stored data while the feed
// is down.
func (s *LeaderboardService) refresh(ctx context.Context) {
	if s.sync != nil {
		finished, err := s.sync.SyncLive(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "live sync before leaderboard", "error", err)
		} else if finished {
			if _, err := s.sync.SyncAll(ctx); err != nil {
				s.logger.WarnContext(ctx, "full sync after finished match", "error", err)
			}
			if err := s.sync.RefreshTable(ctx); err != nil {
				s.logger.WarnContext(ctx, "refresh league table", "error", err)
			}
		}
	}
	if s.scoring != nil {
		if err := s.scoring.Run(ctx); err != nil {
			s.logger.WarnContext(ctx, "scoring pass before leaderboard", "error", err)
		}
	}
}
