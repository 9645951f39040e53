package httpapi

import "net/http"

type teamGroupDTO struct {
	Name  string    `json:"name"`
	Teams []teamDTO `json:"teams"`
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTable")
	defer span.End()

	teams, err := h.tableService.Table(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get table failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGroups")
	defer span.End()

	groups, err := h.tableService.Groups(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get groups failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamGroupDTO, 0, len(groups))
	for _, g := range groups {
		teams := make([]teamDTO, 0, len(g.Teams))
		for _, t := range g.Teams {
			teams = append(teams, teamToDTO(t))
		}
		items = append(items, teamGroupDTO{Name: g.Name, Teams: teams})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
