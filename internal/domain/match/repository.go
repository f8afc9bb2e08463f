package match

import "context"

type Repository interface {
	// ListByCompetition returns every match of the competition inside the
	// scope, regardless of status. An empty scope returns the full schedule.
	ListByCompetition(ctx context.Context, competitionID string, scope Scope) ([]Match, error)
	// ListModifiable returns the matches a simulation may override: the whole
	// schedule up to the cutoff, or only the not-yet-played part of it.
	ListModifiable(ctx context.Context, competitionID string, scope Scope, onlyUnplayed bool) ([]Match, error)
	// ReplaceByCompetition swaps the stored schedule for a competition,
	// used by the feed sync.
	ReplaceByCompetition(ctx context.Context, competitionID string, matches []Match) error
}
