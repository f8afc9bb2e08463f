package httpapi

import (
	"net/http"
	"strconv"

	"github.com/datafoot/standings-engine/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	scope, err := scopeFromQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.standingsService.ListMatches(ctx, usecase.ListMatchesInput{
		CompetitionID: r.PathValue("competitionID"),
		Scope:         scope,
		Pool:          r.URL.Query().Get("pool"),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(matches))
}

// ListModifiableMatches returns the fixtures a simulation may override.
func (h *Handler) ListModifiableMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListModifiableMatches")
	defer span.End()

	scope, err := scopeFromQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	onlyUnplayed, _ := strconv.ParseBool(r.URL.Query().Get("only_unplayed"))

	matches, err := h.standingsService.ListModifiableMatches(ctx, usecase.ListModifiableInput{
		CompetitionID: r.PathValue("competitionID"),
		Scope:         scope,
		Pool:          r.URL.Query().Get("pool"),
		OnlyUnplayed:  onlyUnplayed,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list modifiable matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(matches))
}
