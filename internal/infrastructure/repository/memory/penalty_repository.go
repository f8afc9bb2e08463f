package memory

import (
	"context"
	"sync"

	"github.com/datafoot/standings-engine/internal/domain/penalty"
)

type PenaltyRepository struct {
	mu            sync.RWMutex
	byCompetition map[string][]penalty.Penalty
}

func NewPenaltyRepository(penalties []penalty.Penalty) *PenaltyRepository {
	byCompetition := make(map[string][]penalty.Penalty)
	for _, p := range penalties {
		byCompetition[p.CompetitionID] = append(byCompetition[p.CompetitionID], p)
	}

	return &PenaltyRepository{byCompetition: byCompetition}
}

func (r *PenaltyRepository) ListByCompetition(_ context.Context, competitionID string) ([]penalty.Penalty, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byCompetition[competitionID]
	out := make([]penalty.Penalty, len(items))
	copy(out, items)

	return out, nil
}

func (r *PenaltyRepository) ReplaceByCompetition(_ context.Context, competitionID string, penalties []penalty.Penalty) error {
	items := make([]penalty.Penalty, len(penalties))
	copy(items, penalties)

	r.mu.Lock()
	r.byCompetition[competitionID] = items
	r.mu.Unlock()

	return nil
}
