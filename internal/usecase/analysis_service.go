package usecase

import (
	"context"
	"fmt"

	"github.com/datafoot/standings-engine/internal/domain/competition"
	"github.com/datafoot/standings-engine/internal/domain/match"
	"github.com/datafoot/standings-engine/internal/domain/standings"
)

// AnalysisService layers the informational views on top of computed
// standings: schedule difficulty and the federation special-rule comparator.
// Neither view ever changes a rank in the main table.
type AnalysisService struct {
	standings *StandingsService
	matchRepo match.Repository
	// rules maps competition ID to its special rule; competitions without an
	// entry have no comparator.
	rules map[string]competition.SpecialRule
}

func NewAnalysisService(
	standingsService *StandingsService,
	matchRepo match.Repository,
	rules []competition.SpecialRule,
) *AnalysisService {
	return &AnalysisService{
		standings: standingsService,
		matchRepo: matchRepo,
		rules:     competition.RulesByCompetition(rules),
	}
}

type DifficultyResult struct {
	CompetitionID string
	Table         standings.Table
	Warnings      []standings.Warning
}

// ScheduleDifficulty computes the standings for the scope, then enriches every
// row with the mean current rank of the team's remaining opponents. Remaining
// means not yet completed anywhere in the competition's schedule, not just
// inside the scope window.
func (s *AnalysisService) ScheduleDifficulty(ctx context.Context, input ComputeStandingsInput) (DifficultyResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.ScheduleDifficulty")
	defer span.End()

	result, err := s.standings.Compute(ctx, input)
	if err != nil {
		return DifficultyResult{}, err
	}

	schedule, err := s.matchRepo.ListByCompetition(ctx, result.CompetitionID, match.Scope{})
	if err != nil {
		return DifficultyResult{}, fmt.Errorf("list schedule: %w", err)
	}

	remaining := make([]match.Match, 0, len(schedule))
	for _, m := range schedule {
		if match.IsCompletedStatus(m.Status) {
			continue
		}
		remaining = append(remaining, m)
	}

	return DifficultyResult{
		CompetitionID: result.CompetitionID,
		Table:         standings.ScheduleDifficulty(result.Table, remaining),
		Warnings:      result.Warnings,
	}, nil
}

type ComparatorResult struct {
	CompetitionID string
	Rule          competition.SpecialRule
	Rows          []standings.ComparatorRow
}

// SpecialComparator evaluates the competition's special rule, if it has one,
// against the standings computed for the scope. Competitions without a rule
// get ErrNotFound; the comparator is a side table, never part of the ranking.
func (s *AnalysisService) SpecialComparator(ctx context.Context, input ComputeStandingsInput) (ComparatorResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.SpecialComparator")
	defer span.End()

	rule, ok := s.rules[input.CompetitionID]
	if !ok {
		return ComparatorResult{}, fmt.Errorf("%w: no special rule for competition=%s", ErrNotFound, input.CompetitionID)
	}

	// The comparator reads the whole competition; a pool filter would hide
	// the cross-pool comparison it exists for.
	input.Pool = ""
	result, err := s.standings.Compute(ctx, input)
	if err != nil {
		return ComparatorResult{}, err
	}

	matches, err := s.matchRepo.ListByCompetition(ctx, result.CompetitionID, input.Scope)
	if err != nil {
		return ComparatorResult{}, fmt.Errorf("list matches: %w", err)
	}

	return ComparatorResult{
		CompetitionID: result.CompetitionID,
		Rule:          rule,
		Rows:          standings.Compare(rule, result.Table, matches),
	}, nil
}
