package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/bolzplatz/tippspiel/internal/usecase"
)

type voteRequest struct {
	Choice *bool `json:"choice" validate:"required"`
}

func (h *Handler) GetPollResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPollResults")
	defer span.End()

	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	pollID := strings.TrimSpace(r.PathValue("pollID"))
	result, err := h.pollService.Results(ctx, userID, pollID)
	if err != nil {
		h.logger.WarnContext(ctx, "poll results failed", "poll_id", pollID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitVote")
	defer span.End()

	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	pollID := strings.TrimSpace(r.PathValue("pollID"))

	var req voteRequest
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

	if err := h.pollService.Vote(ctx, userID, pollID, *req.Choice); err != nil {
		h.logger.WarnContext(ctx, "vote failed", "poll_id", pollID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	result, err := h.pollService.Results(ctx, userID, pollID)
	if err != nil {
		h.logger.WarnContext(ctx, "poll results after vote failed", "poll_id", pollID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, result)
}
