package httpapi

import "net/http"

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	insights, err := h.dashboardService.Insights(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "dashboard insights failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, insights)
}
