package httpapi

import (
	"net/http"
	"time"

	"github.com/bolzplatz/tippspiel/internal/usecase"
)

type leaderboardMatchDTO struct {
	Match matchDTO                 `json:"match"`
	Tips  []usecase.LeaderboardTip `json:"tips"`
}

type leaderboardDTO struct {
	Round           int                        `json:"round"`
	Rounds          int                        `json:"rounds"`
	PrevRound       int                        `json:"prev_round"`
	NextRound       int                        `json:"next_round"`
	ClosestMatchNo  int                        `json:"closest_match_no"`
	Entries         []usecase.LeaderboardEntry `json:"entries"`
	Matches         []leaderboardMatchDTO      `json:"matches"`
	LastEvaluatedAt *time.Time                 `json:"last_evaluated_at,omitempty"`
}

// GetLeaderboard renders the standings. Without a round path segment the
// round closest to now is shown.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.leaderboard(w, r, 0)
}

func (h *Handler) GetLeaderboardRound(w http.ResponseWriter, r *http.Request) {
	round, err := parseRoundParam(r.PathValue("round"))
	if err != nil {
		ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboardRound")
		defer span.End()
		writeError(ctx, w, err)
		return
	}
	h.leaderboard(w, r, round)
}

func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request, round int) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.leaderboard")
	defer span.End()

	board, err := h.leaderboardService.Overview(ctx, round)
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard overview failed", "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	names, err := h.teamNamesByID(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "load team names failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	matches := make([]leaderboardMatchDTO, 0, len(board.Matches))
	for _, m := range board.Matches {
		matches = append(matches, leaderboardMatchDTO{
			Match: matchToDTO(m.Match, names),
			Tips:  m.Tips,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardDTO{
		Round:           board.Round,
		Rounds:          board.Rounds,
		PrevRound:       board.PrevRound,
		NextRound:       board.NextRound,
		ClosestMatchNo:  board.ClosestMatchNo,
		Entries:         board.Entries,
		Matches:         matches,
		LastEvaluatedAt: board.LastEvaluatedAt,
	})
}
