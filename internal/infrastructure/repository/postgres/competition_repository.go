package postgres

import (
	"context"
	"fmt"

	"github.com/datafoot/standings-engine/internal/domain/competition"
	qb "github.com/datafoot/standings-engine/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, args, err := qb.Select("*").From("competitions").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competitionFromTable(row))
	}

	return out, nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(qb.Eq("id", competitionID)).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition by id query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition by id: %w", err)
	}

	return competitionFromTable(row), true, nil
}

func competitionFromTable(row competitionTableModel) competition.Competition {
	return competition.Competition{
		ID:             row.ID,
		Name:           row.Name,
		Category:       row.Category,
		Level:          row.Level,
		TieBreak:       competition.NormalizePolicy(row.TieBreak),
		TotalMatchdays: row.TotalMatchdays,
	}
}
