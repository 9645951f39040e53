package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/match"
	"github.com/bolzplatz/tippspiel/internal/domain/prediction"
	"github.com/bolzplatz/tippspiel/internal/domain/user"
	"github.com/bolzplatz/tippspiel/internal/platform/logging"
)

// ScoringService awards points for predictions against known results and
// keeps the per-user leaderboard aggregates in step.
type ScoringService struct {
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	userRepo       user.Repository
	logger         *logging.Logger
	now            func() time.Time
}

func NewScoringService(
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	userRepo user.Repository,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		userRepo:       userRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// EvaluateDue scores every match that needs it: finished matches that were
// never evaluated, and matches currently underway (those get re-scored on
// every pass until they finish). Matches without a usable score are left
// alone. The evaluated flag is only set once a match is finished, so a live
// match keeps coming back. Returns true when at least one match was scored.
func (s *ScoringService) EvaluateDue(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.EvaluateDue")
	defer span.End()

	due, err := s.matchRepo.ListNeedingEvaluation(ctx, s.now().UTC())
	if err != nil {
		return false, fmt.Errorf("list matches needing evaluation: %w", err)
	}

	scoredAny := false
	for _, m := range due {
		if !m.HasResult() {
			continue
		}
		if err := s.evaluateMatch(ctx, m); err != nil {
			s.logger.WarnContext(ctx, "evaluate match", "match", m.ID, "error", err)
			continue
		}
		scoredAny = true
	}
	return scoredAny, nil
}

func (s *ScoringService) evaluateMatch(ctx context.Context, m match.Match) error {
	actual := prediction.Score{Team1: *m.Team1Score, Team2: *m.Team2Score}

	preds, err := s.predictionRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("list predictions: %w", err)
	}

	points := make(map[int64]int, len(preds))
	for _, p := range preds {
		points[p.ID] = prediction.PointsFor(p.Score(), actual)
	}
	if len(points) > 0 {
		if err := s.predictionRepo.SetPointsByMatch(ctx, m.ID, points); err != nil {
			return fmt.Errorf("write points: %w", err)
		}
	}

	if err := s.matchRepo.SetEvaluation(ctx, m.ID, m.Finished, s.now().UTC()); err != nil {
		return fmt.Errorf("stamp evaluation: %w", err)
	}
	return nil
}

// RecalculateTotals rebuilds every user's aggregate counters from the
// predictions table. Users without any rated prediction end up at zero.
func (s *ScoringService) RecalculateTotals(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecalculateTotals")
	defer span.End()

	totals, err := s.predictionRepo.AggregateTotals(ctx)
	if err != nil {
		return fmt.Errorf("aggregate prediction totals: %w", err)
	}

	aggregates := make([]user.Aggregate, 0, len(totals))
	for _, t := range totals {
		aggregates = append(aggregates, user.Aggregate{
			UserID:          t.UserID,
			TotalPoints:     t.TotalPoints,
			CorrectResult:   t.CorrectResult,
			CorrectGoalDiff: t.CorrectGoalDiff,
			CorrectTendency: t.CorrectTendency,
		})
	}
	if err := s.userRepo.UpdateAggregates(ctx, aggregates); err != nil {
		return fmt.Errorf("update user aggregates: %w", err)
	}
	return nil
}

// Run executes one full scoring pass and refreshes the aggregates when
// anything changed.
func (s *ScoringService) Run(ctx context.Context) error {
	scored, err := s.EvaluateDue(ctx)
	if err != nil {
		return err
	}
	if !scored {
		return nil
	}
	return s.RecalculateTotals(ctx)
}
