package httpapi

import (
	"errors"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/datafoot/standings-engine/internal/usecase"
)

type refreshJobRequest struct {
	CompetitionIDs []string `json:"competition_ids"`
	MaxWorkers     int      `json:"max_workers" validate:"omitempty,min=1,max=16"`
	SyncFeed       bool     `json:"sync_feed"`
}

// RunRefreshJob recomputes standings for the requested competitions, or every
// known one when the body names none. The body itself is optional.
func (h *Handler) RunRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshJob")
	defer span.End()

	var req refreshJobRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, invalidBodyError(err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.refreshService.Refresh(ctx, usecase.RefreshInput{
		CompetitionIDs: req.CompetitionIDs,
		MaxWorkers:     req.MaxWorkers,
		SyncFeed:       req.SyncFeed,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "refresh job finished",
		"competitions", result.CompetitionCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
	)

	writeSuccess(ctx, w, http.StatusOK, result)
}
