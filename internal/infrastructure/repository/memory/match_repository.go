package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/datafoot/standings-engine/internal/domain/match"
)

type MatchRepository struct {
	mu            sync.RWMutex
	byCompetition map[string][]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	byCompetition := make(map[string][]match.Match)
	for _, m := range matches {
		byCompetition[m.CompetitionID] = append(byCompetition[m.CompetitionID], m)
	}
	for competitionID := range byCompetition {
		sortMatches(byCompetition[competitionID])
	}

	return &MatchRepository{byCompetition: byCompetition}
}

func (r *MatchRepository) ListByCompetition(_ context.Context, competitionID string, scope match.Scope) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.byCompetition[competitionID] {
		if scope.Contains(m) {
			out = append(out, m)
		}
	}

	return out, nil
}

func (r *MatchRepository) ListModifiable(_ context.Context, competitionID string, scope match.Scope, onlyUnplayed bool) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.byCompetition[competitionID] {
		if !scope.Contains(m) {
			continue
		}
		if onlyUnplayed && match.IsCompletedStatus(m.Status) {
			continue
		}
		out = append(out, m)
	}

	return out, nil
}

func (r *MatchRepository) ReplaceByCompetition(_ context.Context, competitionID string, matches []match.Match) error {
	items := make([]match.Match, len(matches))
	copy(items, matches)
	sortMatches(items)

	r.mu.Lock()
	r.byCompetition[competitionID] = items
	r.mu.Unlock()

	return nil
}

func sortMatches(items []match.Match) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		return items[i].ID < items[j].ID
	})
}
