package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bolzplatz/tippspiel/internal/domain/gameround"
	"github.com/bolzplatz/tippspiel/internal/domain/match"
	"github.com/bolzplatz/tippspiel/internal/domain/prediction"
	"github.com/bolzplatz/tippspiel/internal/platform/logging"
)

// User-facing messages are German, matching the site's audience.
const (
	MsgPredictionsSaved = "Tipp(s) erfolgreich gespeichert"
	MsgNoChanges        = "Keine Änderungen oder Tipps fehlerhaft"
	MsgNoDrawAllowed    = "Kein Unentschieden bei KO-Spielen möglich"
)

// ScoreInput is one raw form row. Scores arrive as strings so that blank
// fields are distinguishable from zero.
type ScoreInput struct {
	MatchID    int64
	Team1Score string
	Team2Score string
}

// BatchResult reports what a submission pass did.
type BatchResult struct {
	Saved        int      `json:"saved"`
	Deleted      int      `json:"deleted"`
	DrawRejected bool     `json:"draw_rejected"`
	Messages     []string `json:"messages"`
}

// PredictionView pairs a match of a round with the user's prediction on it,
// if any.
type PredictionView struct {
	Match      match.Match
	Prediction *prediction.Prediction
	Open       bool
}

// PredictionService handles tip intake and round listings.
type PredictionService struct {
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	calendar       *gameround.Calendar
	// noDraws holds competitions where a drawn prediction is rejected,
	// keyed by feed shortcut (knockout cups).
	noDraws map[string]bool
	logger  *logging.Logger
	now     func() time.Time
}

func NewPredictionService(
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	calendar *gameround.Calendar,
	noDrawCompetitions []string,
	logger *logging.Logger,
) *PredictionService {
	noDraws := make(map[string]bool, len(noDrawCompetitions))
	for _, c := range noDrawCompetitions {
		noDraws[c] = true
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		calendar:       calendar,
		noDraws:        noDraws,
		logger:         logger,
		now:            time.Now,
	}
}

// ListRound returns the matches of a round together with the user's
// predictions, ordered by kickoff.
func (s *PredictionService) ListRound(ctx context.Context, userID int64, round int) ([]PredictionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListRound")
	defer span.End()

	window, err := s.calendar.Window(round)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	matches, err := s.matchRepo.ListByKickoffRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("list round matches: %w", err)
	}

	preds, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user predictions: %w", err)
	}
	byMatch := make(map[int64]prediction.Prediction, len(preds))
	for _, p := range preds {
		byMatch[p.MatchID] = p
	}

	now := s.now().UTC()
	views := make([]PredictionView, 0, len(matches))
	for _, m := range matches {
		view := PredictionView{Match: m, Open: m.IsOpen(now)}
		if p, ok := byMatch[m.ID]; ok {
			p := p
			view.Prediction = &p
		}
		views = append(views, view)
	}
	return views, nil
}

// SubmitBatch stores a whole form of tips at once. Closed matches and
// malformed rows are skipped rather than failing the batch, matching the
// forgiving behavior players expect from a form with many inputs:
//
//   - both fields blank deletes an existing tip while the match is open
//   - one field blank or non-numeric skips the row silently
//   - an unchanged tip is left alone and keeps its original timestamp
//   - a drawn tip on a knockout competition is rejected with a message
func (s *PredictionService) SubmitBatch(ctx context.Context, userID int64, round int, inputs []ScoreInput) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.SubmitBatch")
	defer span.End()

	if _, err := s.calendar.Window(round); err != nil {
		return BatchResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result BatchResult
	now := s.now().UTC()

	for _, input := range inputs {
		m, found, err := s.matchRepo.GetByID(ctx, input.MatchID)
		if err != nil {
			return result, fmt.Errorf("get match %d: %w", input.MatchID, err)
		}
		if !found || !m.IsOpen(now) {
			continue
		}

		raw1 := strings.TrimSpace(input.Team1Score)
		raw2 := strings.TrimSpace(input.Team2Score)

		existing, hasExisting, err := s.predictionRepo.GetByUserAndMatch(ctx, userID, m.ID)
		if err != nil {
			return result, fmt.Errorf("get prediction for match %d: %w", m.ID, err)
		}

		if raw1 == "" && raw2 == "" {
			if hasExisting {
				if err := s.predictionRepo.Delete(ctx, existing.ID); err != nil {
					return result, fmt.Errorf("delete prediction %d: %w", existing.ID, err)
				}
				result.Deleted++
			}
			continue
		}
		if raw1 == "" || raw2 == "" {
			continue
		}

		score1, err1 := strconv.Atoi(raw1)
		score2, err2 := strconv.Atoi(raw2)
		if err1 != nil || err2 != nil || score1 < 0 || score2 < 0 {
			continue
		}

		if score1 == score2 && s.noDraws[m.League] {
			result.DrawRejected = true
			continue
		}

		if hasExisting && existing.Team1Score == score1 && existing.Team2Score == score2 {
			continue
		}

		tip := prediction.Prediction{
			ID:          existing.ID,
			UserID:      userID,
			MatchID:     m.ID,
			Round:       m.Round,
			Team1Score:  score1,
			Team2Score:  score2,
			GoalDiff:    score1 - score2,
			Winner:      prediction.Score{Team1: score1, Team2: score2}.Winner(),
			PredictedAt: now,
		}
		if hasExisting {
			if err := s.predictionRepo.Update(ctx, tip); err != nil {
				return result, fmt.Errorf("update prediction %d: %w", existing.ID, err)
			}
		} else {
			tip.ID = 0
			if err := s.predictionRepo.Insert(ctx, tip); err != nil {
				return result, fmt.Errorf("insert prediction for match %d: %w", m.ID, err)
			}
		}
		result.Saved++
	}

	// Exactly one flash for the whole batch: success once anything changed,
	// otherwise the last rejection reason.
	switch {
	case result.Saved > 0 || result.Deleted > 0:
		result.Messages = []string{MsgPredictionsSaved}
	case result.DrawRejected:
		result.Messages = []string{MsgNoDrawAllowed}
	default:
		result.Messages = []string{MsgNoChanges}
	}
	return result, nil
}
