package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/datafoot/standings-engine/internal/domain/match"
	"github.com/datafoot/standings-engine/internal/platform/logging"
	"github.com/datafoot/standings-engine/internal/usecase"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	standingsService *usecase.StandingsService
	analysisService  *usecase.AnalysisService
	refreshService   *usecase.RefreshService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	standingsService *usecase.StandingsService,
	analysisService *usecase.AnalysisService,
	refreshService *usecase.RefreshService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingsService: standingsService,
		analysisService:  analysisService,
		refreshService:   refreshService,
		logger:           logger,
		validator:        validator.New(),
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

func invalidBodyError(err error) error {
	return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
}

const scopeDateLayout = "2006-01-02"

// scopeFromQuery maps date / matchday_min / matchday_max parameters onto a
// scope. Only syntax is checked here; the one-window rule is enforced by the
// usecase so the simulate body and the query string share one validation.
func scopeFromQuery(query url.Values) (match.Scope, error) {
	var scope match.Scope

	if raw := strings.TrimSpace(query.Get("date")); raw != "" {
		cutoff, err := parseCutoffDate(raw)
		if err != nil {
			return match.Scope{}, err
		}
		scope.CutoffDate = &cutoff
	}
	if raw := strings.TrimSpace(query.Get("matchday_min")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return match.Scope{}, fmt.Errorf("%w: matchday_min must be an integer", usecase.ErrInvalidInput)
		}
		scope.MatchdayMin = &value
	}
	if raw := strings.TrimSpace(query.Get("matchday_max")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return match.Scope{}, fmt.Errorf("%w: matchday_max must be an integer", usecase.ErrInvalidInput)
		}
		scope.MatchdayMax = &value
	}

	return scope, nil
}

// parseCutoffDate turns a YYYY-MM-DD value into a cutoff covering the whole
// requested day, so evening kick-offs on the cutoff date stay in scope.
func parseCutoffDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(scopeDateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", usecase.ErrInvalidInput)
	}
	return parsed.UTC().Add(24*time.Hour - time.Nanosecond), nil
}
