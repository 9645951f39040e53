package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/bolzplatz/tippspiel/internal/usecase"
)

type submitPredictionsRequest struct {
	Tips []predictionInputDTO `json:"tips" validate:"required,dive"`
}

// predictionInputDTO carries the raw form values. Scores stay strings so a
// cleared field is distinguishable from an entered zero.
type predictionInputDTO struct {
	MatchID    int64  `json:"match_id" validate:"required"`
	Team1Score string `json:"team1_score" validate:"max=3"`
	Team2Score string `json:"team2_score" validate:"max=3"`
}

type predictionViewDTO struct {
	Match      matchDTO       `json:"match"`
	Prediction *predictionDTO `json:"prediction,omitempty"`
	Open       bool           `json:"open"`
}

func (h *Handler) ListRoundPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoundPredictions")
	defer span.End()

	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	round, err := parseRoundParam(r.PathValue("round"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	views, err := h.predictionService.ListRound(ctx, userID, round)
	if err != nil {
		h.logger.WarnContext(ctx, "list round predictions failed", "user_id", userID, "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	names, err := h.teamNamesByID(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "load team names failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]predictionViewDTO, 0, len(views))
	for _, v := range views {
		item := predictionViewDTO{
			Match: matchToDTO(v.Match, names),
			Open:  v.Open,
		}
		if v.Prediction != nil {
			dto := predictionToDTO(*v.Prediction)
			item.Prediction = &dto
		}
		items = append(items, item)
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SubmitPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPredictions")
	defer span.End()

	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	round, err := parseRoundParam(r.PathValue("round"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitPredictionsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	defer func() { _ = r.Body.Close() }()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.ScoreInput, 0, len(req.Tips))
	for _, tip := range req.Tips {
		inputs = append(inputs, usecase.ScoreInput{
			MatchID:    tip.MatchID,
			Team1Score: tip.Team1Score,
			Team2Score: tip.Team2Score,
		})
	}

	result, err := h.predictionService.SubmitBatch(ctx, userID, round, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "submit predictions failed", "user_id", userID, "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
