package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bolzplatz/tippspiel/internal/domain/match"
	"github.com/bolzplatz/tippspiel/internal/domain/prediction"
	"github.com/bolzplatz/tippspiel/internal/domain/team"
	"github.com/bolzplatz/tippspiel/internal/platform/logging"
	"github.com/bolzplatz/tippspiel/internal/usecase"
)

type Handler struct {
	authService        *usecase.AuthService
	predictionService  *usecase.PredictionService
	leaderboardService *usecase.LeaderboardService
	tableService       *usecase.TableService
	dashboardService   *usecase.DashboardService
	pollService        *usecase.PollService
	syncService        *usecase.SyncService
	scoringService     *usecase.ScoringService
	teamRepo           team.Repository
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	predictionService *usecase.PredictionService,
	leaderboardService *usecase.LeaderboardService,
	tableService *usecase.TableService,
	dashboardService *usecase.DashboardService,
	pollService *usecase.PollService,
	syncService *usecase.SyncService,
	scoringService *usecase.ScoringService,
	teamRepo team.Repository,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:        authService,
		predictionService:  predictionService,
		leaderboardService: leaderboardService,
		tableService:       tableService,
		dashboardService:   dashboardService,
		pollService:        pollService,
		syncService:        syncService,
		scoringService:     scoringService,
		teamRepo:           teamRepo,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// requireUserID pulls the authenticated user out of the context. Routes
// behind RequireAuth always have one; a miss means a wiring bug.
func requireUserID(ctx context.Context) (int64, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return 0, fmt.Errorf("%w: no authenticated user in request context", usecase.ErrUnauthorized)
	}
	return userID, nil
}

func parseRoundParam(raw string) (int, error) {
	round, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: round must be a number", usecase.ErrInvalidInput)
	}
	return round, nil
}

// teamNamesByID loads the display names for match rendering, placeholder
// team included.
func (h *Handler) teamNamesByID(ctx context.Context) (map[int64]string, error) {
	teams, err := h.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	return names, nil
}

type matchDTO struct {
	ID         int64     `json:"id"`
	Round      int       `json:"round"`
	Team1ID    int64     `json:"team1_id"`
	Team2ID    int64     `json:"team2_id"`
	Team1Name  string    `json:"team1_name"`
	Team2Name  string    `json:"team2_name"`
	Team1Score *int      `json:"team1_score"`
	Team2Score *int      `json:"team2_score"`
	KickoffAt  time.Time `json:"kickoff_at"`
	Finished   bool      `json:"finished"`
	League     string    `json:"league"`
	GroupName  string    `json:"group_name"`
}

func matchToDTO(m match.Match, names map[int64]string) matchDTO {
	return matchDTO{
		ID:         m.ID,
		Round:      m.Round,
		Team1ID:    m.Team1ID,
		Team2ID:    m.Team2ID,
		Team1Name:  names[m.Team1ID],
		Team2Name:  names[m.Team2ID],
		Team1Score: m.Team1Score,
		Team2Score: m.Team2Score,
		KickoffAt:  m.KickoffAt,
		Finished:   m.Finished,
		League:     m.League,
		GroupName:  m.GroupName,
	}
}

type predictionDTO struct {
	MatchID     int64     `json:"match_id"`
	Team1Score  int       `json:"team1_score"`
	Team2Score  int       `json:"team2_score"`
	Points      int       `json:"points"`
	PredictedAt time.Time `json:"predicted_at"`
}

func predictionToDTO(p prediction.Prediction) predictionDTO {
	return predictionDTO{
		MatchID:     p.MatchID,
		Team1Score:  p.Team1Score,
		Team2Score:  p.Team2Score,
		Points:      p.Points,
		PredictedAt: p.PredictedAt,
	}
}

type teamDTO struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ShortName     string `json:"short_name"`
	IconURL       string `json:"icon_url"`
	GroupName     string `json:"group_name"`
	Points        int    `json:"points"`
	Goals         int    `json:"goals"`
	OpponentGoals int    `json:"opponent_goals"`
	Matches       int    `json:"matches"`
	Won           int    `json:"won"`
	Lost          int    `json:"lost"`
	Draw          int    `json:"draw"`
	GoalDiff      int    `json:"goal_diff"`
	Rank          int    `json:"rank"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:            t.ID,
		Name:          t.Name,
		ShortName:     t.ShortName,
		IconURL:       t.IconURL,
		GroupName:     t.GroupName,
		Points:        t.Points,
		Goals:         t.Goals,
		OpponentGoals: t.OpponentGoals,
		Matches:       t.Matches,
		Won:           t.Won,
		Lost:          t.Lost,
		Draw:          t.Draw,
		GoalDiff:      t.GoalDiff,
		Rank:          t.Rank,
	}
}
