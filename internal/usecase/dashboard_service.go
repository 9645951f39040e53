package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/bolzplatz/tippspiel/internal/domain/match"
	"github.com/bolzplatz/tippspiel/internal/domain/prediction"
	"github.com/bolzplatz/tippspiel/internal/domain/user"
)

// Insights is the personal statistics block on a user's dashboard. The
// percentage fields are whole numbers relative to rated predictions.
type Insights struct {
	Username            string  `json:"username"`
	TotalPoints         int     `json:"total_points"`
	Rank                int     `json:"rank"`
	UserCount           int     `json:"user_count"`
	Leader              string  `json:"leader"`
	PredictionsTotal    int     `json:"predictions_total"`
	PredictionsRated    int     `json:"predictions_rated"`
	MissedGames         int     `json:"missed_games"`
	CorrectResult       int     `json:"correct_result"`
	CorrectGoalDiff     int     `json:"correct_goal_diff"`
	CorrectTendency     int     `json:"correct_tendency"`
	WrongPredictions    int     `json:"wrong_predictions"`
	CorrectResultPct    int     `json:"correct_result_pct"`
	CorrectGoalDiffPct  int     `json:"correct_goal_diff_pct"`
	CorrectTendencyPct  int     `json:"correct_tendency_pct"`
	WrongPredictionsPct int     `json:"wrong_predictions_pct"`
	PointsPerTip        float64 `json:"points_per_tip"`
}

// DashboardService computes per-user insight numbers.
type DashboardService struct {
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	userRepo       user.Repository
}

func NewDashboardService(
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	userRepo user.Repository,
) *DashboardService {
	return &DashboardService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		userRepo:       userRepo,
	}
}

// Insights builds the statistics block for one user. Missed games counts
// finished matches the user left untipped. Ratios divide by rated
// predictions and fall back to zero when nothing was rated yet.
func (s *DashboardService) Insights(ctx context.Context, userID int64) (Insights, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Insights")
	defer span.End()

	u, found, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return Insights{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return Insights{}, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	total, err := s.predictionRepo.CountByUser(ctx, userID)
	if err != nil {
		return Insights{}, fmt.Errorf("count predictions: %w", err)
	}
	rated, err := s.predictionRepo.CountRatedByUser(ctx, userID)
	if err != nil {
		return Insights{}, fmt.Errorf("count rated predictions: %w", err)
	}
	finished, err := s.matchRepo.CountFinished(ctx)
	if err != nil {
		return Insights{}, fmt.Errorf("count finished matches: %w", err)
	}

	ranked, err := s.userRepo.ListRanked(ctx)
	if err != nil {
		return Insights{}, fmt.Errorf("list ranked users: %w", err)
	}
	rank := 0
	leader := ""
	if len(ranked) > 0 {
		leader = ranked[0].Username
	}
	for i, r := range ranked {
		if r.ID == userID {
			rank = i + 1
			break
		}
	}

	wrong := rated - u.CorrectResult - u.CorrectGoalDiff - u.CorrectTendency
	if wrong < 0 {
		wrong = 0
	}

	insights := Insights{
		Username:         u.Username,
		TotalPoints:      u.TotalPoints,
		Rank:             rank,
		UserCount:        len(ranked),
		Leader:           leader,
		PredictionsTotal: total,
		PredictionsRated: rated,
		MissedGames:      finished - rated,
		CorrectResult:    u.CorrectResult,
		CorrectGoalDiff:  u.CorrectGoalDiff,
		CorrectTendency:  u.CorrectTendency,
		WrongPredictions: wrong,
	}
	if rated > 0 {
		insights.CorrectResultPct = pct(u.CorrectResult, rated)
		insights.CorrectGoalDiffPct = pct(u.CorrectGoalDiff, rated)
		insights.CorrectTendencyPct = pct(u.CorrectTendency, rated)
		insights.WrongPredictionsPct = pct(wrong, rated)
		insights.PointsPerTip = math.Round(float64(u.TotalPoints)/float64(rated)*100) / 100
	}
	return insights, nil
}

func pct(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
