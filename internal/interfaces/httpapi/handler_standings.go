package httpapi

import (
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/datafoot/standings-engine/internal/domain/match"
	"github.com/datafoot/standings-engine/internal/domain/standings"
	"github.com/datafoot/standings-engine/internal/usecase"
)

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	competitions, err := h.standingsService.ListCompetitions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]competitionDTO, 0, len(competitions))
	for _, c := range competitions {
		out = append(out, competitionToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	scope, err := scopeFromQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.standingsService.Compute(ctx, usecase.ComputeStandingsInput{
		CompetitionID: r.PathValue("competitionID"),
		Scope:         scope,
		Pool:          r.URL.Query().Get("pool"),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "compute standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsResponse{
		CompetitionID: result.CompetitionID,
		Policy:        string(result.Policy),
		Pools:         tableToDTO(result.Table, false),
		TieGroups:     tieGroupsToDTO(result.TieGroups),
		Warnings:      warningsToDTO(result.Warnings),
	})
}

type simulateOverrideRecord struct {
	MatchID   string `json:"match_id" validate:"required"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
}

type simulateStandingsRequest struct {
	Date        string                   `json:"date"`
	MatchdayMin *int                     `json:"matchday_min"`
	MatchdayMax *int                     `json:"matchday_max"`
	Pool        string                   `json:"pool"`
	Overrides   []simulateOverrideRecord `json:"overrides" validate:"required,min=1,dive"`
}

// SimulateStandings recomputes a table with hypothetical scores layered over
// the official results. Nothing is persisted and nothing is cached.
func (h *Handler) SimulateStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimulateStandings")
	defer span.End()

	var req simulateStandingsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, invalidBodyError(err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var scope match.Scope
	if req.Date != "" {
		cutoff, err := parseCutoffDate(req.Date)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		scope.CutoffDate = &cutoff
	}
	scope.MatchdayMin = req.MatchdayMin
	scope.MatchdayMax = req.MatchdayMax

	overrides := make([]standings.Override, 0, len(req.Overrides))
	for _, record := range req.Overrides {
		overrides = append(overrides, standings.Override{
			MatchID:   record.MatchID,
			HomeGoals: record.HomeGoals,
			AwayGoals: record.AwayGoals,
		})
	}

	result, err := h.standingsService.Compute(ctx, usecase.ComputeStandingsInput{
		CompetitionID: r.PathValue("competitionID"),
		Scope:         scope,
		Pool:          req.Pool,
		Overrides:     overrides,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "simulate standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsResponse{
		CompetitionID: result.CompetitionID,
		Policy:        string(result.Policy),
		Simulated:     result.Simulated,
		Pools:         tableToDTO(result.Table, false),
		TieGroups:     tieGroupsToDTO(result.TieGroups),
		Warnings:      warningsToDTO(result.Warnings),
	})
}

func (h *Handler) GetScheduleDifficulty(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScheduleDifficulty")
	defer span.End()

	scope, err := scopeFromQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.analysisService.ScheduleDifficulty(ctx, usecase.ComputeStandingsInput{
		CompetitionID: r.PathValue("competitionID"),
		Scope:         scope,
		Pool:          r.URL.Query().Get("pool"),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "schedule difficulty failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsResponse{
		CompetitionID: result.CompetitionID,
		Pools:         tableToDTO(result.Table, true),
		Warnings:      warningsToDTO(result.Warnings),
	})
}

func (h *Handler) GetSpecialComparator(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSpecialComparator")
	defer span.End()

	scope, err := scopeFromQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.analysisService.SpecialComparator(ctx, usecase.ComputeStandingsInput{
		CompetitionID: r.PathValue("competitionID"),
		Scope:         scope,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "special comparator failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	rows := make([]comparatorRowDTO, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, comparatorRowDTO{
			Pool:     row.Pool,
			TeamID:   row.TeamID,
			TeamName: row.TeamName,
			Points:   row.Points,
			Rank:     row.Rank,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, comparatorResponse{
		CompetitionID: result.CompetitionID,
		Label:         result.Rule.Label,
		TargetRank:    result.Rule.TargetRank,
		BandLow:       result.Rule.BandLow,
		BandHigh:      result.Rule.BandHigh,
		Direction:     string(result.Rule.Direction),
		Rows:          rows,
	})
}
