package postgres

import (
	"context"
	"fmt"

	"github.com/datafoot/standings-engine/internal/domain/match"
	qb "github.com/datafoot/standings-engine/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByCompetition(ctx context.Context, competitionID string, scope match.Scope) ([]match.Match, error) {
	conditions := []qb.Condition{qb.Eq("competition_id", competitionID)}
	conditions = append(conditions, scopeConditions(scope)...)

	query, args, err := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromTable(row))
	}

	return out, nil
}

func (r *MatchRepository) ListModifiable(ctx context.Context, competitionID string, scope match.Scope, onlyUnplayed bool) ([]match.Match, error) {
	conditions := []qb.Condition{qb.Eq("competition_id", competitionID)}
	conditions = append(conditions, scopeConditions(scope)...)
	if onlyUnplayed {
		conditions = append(conditions, qb.Expr("status <> ?", match.StatusCompleted))
	}

	query, args, err := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select modifiable matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select modifiable matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromTable(row))
	}

	return out, nil
}

func (r *MatchRepository) ReplaceByCompetition(ctx context.Context, competitionID string, matches []match.Match) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace matches tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM matches WHERE competition_id = $1", competitionID); err != nil {
		return fmt.Errorf("delete matches: %w", err)
	}

	for _, m := range matches {
		query, args, err := qb.InsertModel("matches", matchToInsert(m), "")
		if err != nil {
			return fmt.Errorf("build insert match query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert match %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace matches tx: %w", err)
	}

	return nil
}

// scopeConditions translates a computation scope to SQL filters, keeping the
// same inclusive semantics the in-memory store applies.
func scopeConditions(scope match.Scope) []qb.Condition {
	out := make([]qb.Condition, 0, 1)
	if scope.HasCutoff() {
		out = append(out, qb.Lte("match_date", scope.CutoffDate.UTC()))
	}
	if scope.HasMatchdayWindow() {
		out = append(out, qb.Between("matchday", *scope.MatchdayMin, *scope.MatchdayMax))
	}
	return out
}
