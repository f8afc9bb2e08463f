package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/datafoot/standings-engine/internal/domain/competition"
	"github.com/datafoot/standings-engine/internal/domain/match"
	"github.com/datafoot/standings-engine/internal/domain/penalty"
	"github.com/datafoot/standings-engine/internal/domain/standings"
	"github.com/datafoot/standings-engine/internal/platform/cache"
)

// StandingsService runs the full computation pipeline for one competition:
// scoped matches in, ranked per-pool tables out. Results without overrides
// are cached per scope; a simulation is always computed fresh.
type StandingsService struct {
	competitionRepo competition.Repository
	matchRepo       match.Repository
	penaltyRepo     penalty.Repository
	snapshots       *cache.Store
}

func NewStandingsService(
	competitionRepo competition.Repository,
	matchRepo match.Repository,
	penaltyRepo penalty.Repository,
	snapshots *cache.Store,
) *StandingsService {
	return &StandingsService{
		competitionRepo: competitionRepo,
		matchRepo:       matchRepo,
		penaltyRepo:     penaltyRepo,
		snapshots:       snapshots,
	}
}

type ComputeStandingsInput struct {
	CompetitionID string
	Scope         match.Scope
	// Pool restricts the response to one pool; empty means every pool.
	Pool      string
	Overrides []standings.Override
}

type StandingsResult struct {
	CompetitionID string
	Policy        competition.TieBreakPolicy
	Table         standings.Table
	// TieGroups carries the head-to-head sub-tables that separated
	// points-equal teams; empty under the GENERAL policy.
	TieGroups []standings.TieGroup
	Warnings  []standings.Warning
	Simulated bool
}

func (s *StandingsService) ListCompetitions(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListCompetitions")
	defer span.End()

	items, err := s.competitionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return items, nil
}

// Compute validates the scope, fetches the scoped data and runs the pipeline:
// aggregate, apply penalties, resolve head-to-head ties when the competition's
// policy asks for them, rank. Override errors and empty scopes surface as the
// engine's sentinel errors for the transport layer to map.
func (s *StandingsService) Compute(ctx context.Context, input ComputeStandingsInput) (StandingsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Compute")
	defer span.End()

	comp, err := s.resolveCompetition(ctx, input.CompetitionID)
	if err != nil {
		return StandingsResult{}, err
	}
	if err := validateScope(input.Scope, comp); err != nil {
		return StandingsResult{}, err
	}

	if len(input.Overrides) == 0 && s.snapshots != nil {
		key := standingsCacheKey(comp.ID, input.Scope, input.Pool)
		value, err := s.snapshots.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
			return s.compute(ctx, comp, input)
		})
		if err != nil {
			return StandingsResult{}, err
		}
		result, ok := value.(StandingsResult)
		if !ok {
			return StandingsResult{}, fmt.Errorf("unexpected cached standings type %T", value)
		}
		return result, nil
	}

	return s.compute(ctx, comp, input)
}

func (s *StandingsService) compute(ctx context.Context, comp competition.Competition, input ComputeStandingsInput) (StandingsResult, error) {
	matches, err := s.matchRepo.ListByCompetition(ctx, comp.ID, input.Scope)
	if err != nil {
		return StandingsResult{}, fmt.Errorf("list matches: %w", err)
	}

	warnings := make([]standings.Warning, 0)
	if len(input.Overrides) > 0 {
		modifiable, err := s.matchRepo.ListModifiable(ctx, comp.ID, input.Scope, false)
		if err != nil {
			return StandingsResult{}, fmt.Errorf("list modifiable matches: %w", err)
		}
		merged, overrideWarnings, err := standings.MergeOverrides(matches, modifiable, input.Overrides)
		if err != nil {
			return StandingsResult{}, fmt.Errorf("merge overrides: %w", err)
		}
		matches = merged
		warnings = append(warnings, overrideWarnings...)
	}

	table, aggregateWarnings, err := standings.Aggregate(matches)
	if err != nil {
		return StandingsResult{}, fmt.Errorf("aggregate standings: %w", err)
	}
	warnings = append(warnings, aggregateWarnings...)

	penalties, err := s.penaltyRepo.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return StandingsResult{}, fmt.Errorf("list penalties: %w", err)
	}
	table = standings.ApplyPenalties(table, penalties, input.Scope.CutoffDate)

	var groups []standings.TieGroup
	if comp.TieBreak == competition.PolicyHeadToHead {
		table, groups = standings.ResolveHeadToHead(table, matches)
	}
	table = standings.Rank(table, comp.TieBreak)

	if input.Pool != "" {
		rows, ok := table[input.Pool]
		if !ok {
			return StandingsResult{}, fmt.Errorf("%w: pool=%s", ErrNotFound, input.Pool)
		}
		table = standings.Table{input.Pool: rows}
		groups = filterGroupsByPool(groups, input.Pool)
	}

	return StandingsResult{
		CompetitionID: comp.ID,
		Policy:        comp.TieBreak,
		Table:         table,
		TieGroups:     groups,
		Warnings:      warnings,
		Simulated:     len(input.Overrides) > 0,
	}, nil
}

type ListMatchesInput struct {
	CompetitionID string
	Scope         match.Scope
	Pool          string
}

func (s *StandingsService) ListMatches(ctx context.Context, input ListMatchesInput) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListMatches")
	defer span.End()

	comp, err := s.resolveCompetition(ctx, input.CompetitionID)
	if err != nil {
		return nil, err
	}
	if !input.Scope.IsEmpty() {
		if err := validateScope(input.Scope, comp); err != nil {
			return nil, err
		}
	}

	matches, err := s.matchRepo.ListByCompetition(ctx, comp.ID, input.Scope)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return filterMatchesByPool(matches, input.Pool), nil
}

type ListModifiableInput struct {
	CompetitionID string
	Scope         match.Scope
	Pool          string
	// OnlyUnplayed drops already-completed matches, leaving the fixtures a
	// simulation can invent a score for.
	OnlyUnplayed bool
}

func (s *StandingsService) ListModifiableMatches(ctx context.Context, input ListModifiableInput) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListModifiableMatches")
	defer span.End()

	comp, err := s.resolveCompetition(ctx, input.CompetitionID)
	if err != nil {
		return nil, err
	}
	if !input.Scope.IsEmpty() {
		if err := validateScope(input.Scope, comp); err != nil {
			return nil, err
		}
	}

	matches, err := s.matchRepo.ListModifiable(ctx, comp.ID, input.Scope, input.OnlyUnplayed)
	if err != nil {
		return nil, fmt.Errorf("list modifiable matches: %w", err)
	}
	return filterMatchesByPool(matches, input.Pool), nil
}

// InvalidateSnapshots drops every cached standings view of a competition,
// called after a feed sync rewrote its matches or penalties.
func (s *StandingsService) InvalidateSnapshots(ctx context.Context, competitionID string) {
	if s.snapshots == nil {
		return
	}
	s.snapshots.DeletePrefix(ctx, "standings:"+competitionID+":")
}

func (s *StandingsService) resolveCompetition(ctx context.Context, competitionID string) (competition.Competition, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}
	return comp, nil
}

// validateScope enforces the one-window rule: a computation runs up to a date
// cutoff or over a matchday range, never both and never neither. A half-open
// matchday range is rejected too.
func validateScope(scope match.Scope, comp competition.Competition) error {
	partialWindow := (scope.MatchdayMin != nil) != (scope.MatchdayMax != nil)
	if partialWindow {
		return fmt.Errorf("%w: matchday range needs both bounds", ErrInvalidScope)
	}
	if scope.HasCutoff() && scope.HasMatchdayWindow() {
		return fmt.Errorf("%w: cutoff date and matchday range are mutually exclusive", ErrInvalidScope)
	}
	if !scope.HasCutoff() && !scope.HasMatchdayWindow() {
		return fmt.Errorf("%w: a cutoff date or a matchday range is required", ErrInvalidScope)
	}
	if scope.HasMatchdayWindow() {
		if *scope.MatchdayMin < 1 || *scope.MatchdayMax < *scope.MatchdayMin {
			return fmt.Errorf("%w: matchday range %d-%d is not ordered", ErrInvalidScope, *scope.MatchdayMin, *scope.MatchdayMax)
		}
		if comp.TotalMatchdays > 0 && *scope.MatchdayMax > comp.TotalMatchdays {
			return fmt.Errorf("%w: matchday %d exceeds the %d scheduled", ErrInvalidScope, *scope.MatchdayMax, comp.TotalMatchdays)
		}
	}
	return nil
}

func standingsCacheKey(competitionID string, scope match.Scope, pool string) string {
	var b strings.Builder
	b.WriteString("standings:")
	b.WriteString(competitionID)
	b.WriteString(":")
	switch {
	case scope.HasCutoff():
		b.WriteString("cutoff=")
		b.WriteString(scope.CutoffDate.UTC().Format("2006-01-02"))
	case scope.HasMatchdayWindow():
		b.WriteString("md=")
		b.WriteString(strconv.Itoa(*scope.MatchdayMin))
		b.WriteString("-")
		b.WriteString(strconv.Itoa(*scope.MatchdayMax))
	}
	if pool != "" {
		b.WriteString(":pool=")
		b.WriteString(pool)
	}
	return b.String()
}

func filterMatchesByPool(matches []match.Match, pool string) []match.Match {
	if pool == "" {
		return matches
	}
	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.Pool == pool {
			out = append(out, m)
		}
	}
	return out
}

func filterGroupsByPool(groups []standings.TieGroup, pool string) []standings.TieGroup {
	if len(groups) == 0 {
		return groups
	}
	out := make([]standings.TieGroup, 0, len(groups))
	for _, g := range groups {
		if g.Pool == pool {
			out = append(out, g)
		}
	}
	return out
}
