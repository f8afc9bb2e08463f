package postgres

import (
	"context"
	"fmt"

	"github.com/datafoot/standings-engine/internal/domain/penalty"
	qb "github.com/datafoot/standings-engine/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type PenaltyRepository struct {
	db *sqlx.DB
}

func NewPenaltyRepository(db *sqlx.DB) *PenaltyRepository {
	return &PenaltyRepository{db: db}
}

func (r *PenaltyRepository) ListByCompetition(ctx context.Context, competitionID string) ([]penalty.Penalty, error) {
	query, args, err := qb.Select("*").From("penalties").
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("effective_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select penalties query: %w", err)
	}

	var rows []penaltyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select penalties: %w", err)
	}

	out := make([]penalty.Penalty, 0, len(rows))
	for _, row := range rows {
		out = append(out, penaltyFromTable(row))
	}

	return out, nil
}

func (r *PenaltyRepository) ReplaceByCompetition(ctx context.Context, competitionID string, penalties []penalty.Penalty) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace penalties tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM penalties WHERE competition_id = $1", competitionID); err != nil {
		return fmt.Errorf("delete penalties: %w", err)
	}

	for _, p := range penalties {
		query, args, err := qb.InsertModel("penalties", penaltyToInsert(p), "")
		if err != nil {
			return fmt.Errorf("build insert penalty query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert penalty for team %s: %w", p.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace penalties tx: %w", err)
	}

	return nil
}
