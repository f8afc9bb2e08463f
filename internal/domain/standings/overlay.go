package standings

import (
	"fmt"
	"sort"

	"github.com/datafoot/standings-engine/internal/domain/match"
)

// Override replaces the score of one match, identified by its ID. It applies
// the same way to an already-played match and a not-yet-played one: both
// simply receive the scores the aggregation needs.
type Override struct {
	MatchID   string
	HomeGoals int
	AwayGoals int
}

// MergeOverrides merges user-supplied score overrides into the official
// match set. Any match whose ID appears in an override is removed from the
// official set and replaced by a completed copy carrying the override score,
// so at most one version of a given match ever contributes. An override
// whose ID matches nothing in the official or modifiable set is a caller
// programming error and fails the merge with ErrUnresolvedOverride; an
// override with a negative score is skipped and reported as a warning.
func MergeOverrides(official, modifiable []match.Match, overrides []Override) ([]match.Match, []Warning, error) {
	if len(overrides) == 0 {
		out := make([]match.Match, len(official))
		copy(out, official)
		return out, nil, nil
	}

	officialIdx := make(map[string]int, len(official))
	for i, m := range official {
		officialIdx[m.ID] = i
	}
	modifiableByID := make(map[string]match.Match, len(modifiable))
	for _, m := range modifiable {
		modifiableByID[m.ID] = m
	}

	warnings := make([]Warning, 0)
	replaced := make(map[string]match.Match, len(overrides))

	for _, ov := range overrides {
		var base match.Match
		if idx, ok := officialIdx[ov.MatchID]; ok {
			base = official[idx]
		} else if m, ok := modifiableByID[ov.MatchID]; ok {
			base = m
		} else {
			return nil, warnings, fmt.Errorf("%w: %s", ErrUnresolvedOverride, ov.MatchID)
		}

		if ov.HomeGoals < 0 || ov.AwayGoals < 0 {
			warnings = append(warnings, Warning{
				Code:    WarningMalformedOverride,
				MatchID: ov.MatchID,
				Detail:  fmt.Sprintf("negative override score %d-%d", ov.HomeGoals, ov.AwayGoals),
			})
			continue
		}

		home, away := ov.HomeGoals, ov.AwayGoals
		base.HomeGoals = &home
		base.AwayGoals = &away
		base.Status = match.StatusCompleted
		replaced[base.ID] = base
	}

	merged := make([]match.Match, 0, len(official)+len(replaced))
	for _, m := range official {
		if override, ok := replaced[m.ID]; ok {
			merged = append(merged, override)
			delete(replaced, m.ID)
			continue
		}
		merged = append(merged, m)
	}

	// Overrides for fixtures absent from the official set (not-yet-played
	// matches) are appended in ID order to keep the merge deterministic.
	extra := make([]match.Match, 0, len(replaced))
	for _, m := range replaced {
		extra = append(extra, m)
	}
	sort.SliceStable(extra, func(i, j int) bool { return extra[i].ID < extra[j].ID })
	merged = append(merged, extra...)

	return merged, warnings, nil
}
