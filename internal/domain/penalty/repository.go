package penalty

import "context"

type Repository interface {
	ListByCompetition(ctx context.Context, competitionID string) ([]Penalty, error)
	ReplaceByCompetition(ctx context.Context, competitionID string, penalties []Penalty) error
}
