package httpapi

import "net/http"

// RunSyncJob runs a full feed synchronisation: match data for every
// configured competition, the league table and any scoring that became due.
func (h *Handler) RunSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncJob")
	defer span.End()

	result, err := h.syncService.SyncAll(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "sync job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	if err := h.syncService.RefreshTable(ctx); err != nil {
		h.logger.WarnContext(ctx, "table refresh failed during sync job", "error", err)
	}
	if err := h.scoringService.Run(ctx); err != nil {
		h.logger.WarnContext(ctx, "scoring failed during sync job", "error", err)
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// RunSyncLiveJob refreshes matches currently underway and, when one of
// them finished, triggers a full pass so final standings catch up.
func (h *Handler) RunSyncLiveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncLiveJob")
	defer span.End()

	finished, err := h.syncService.SyncLive(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "live sync job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	if finished {
		if _, err := h.syncService.SyncAll(ctx); err != nil {
			h.logger.WarnContext(ctx, "full sync after live finish failed", "error", err)
		}
		if err := h.syncService.RefreshTable(ctx); err != nil {
			h.logger.WarnContext(ctx, "table refresh after live finish failed", "error", err)
		}
	}
	if err := h.scoringService.Run(ctx); err != nil {
		h.logger.WarnContext(ctx, "scoring failed during live sync job", "error", err)
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"finished": finished})
}

// RunEvaluateJob awards points for due matches and recomputes the user
// standings.
func (h *Handler) RunEvaluateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunEvaluateJob")
	defer span.End()

	if err := h.scoringService.Run(ctx); err != nil {
		h.logger.WarnContext(ctx, "evaluate job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "evaluated"})
}
