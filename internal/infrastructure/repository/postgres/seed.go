package postgres

import (
	"context"
	"fmt"

	"github.com/datafoot/standings-engine/internal/infrastructure/repository/memory"
	"github.com/jmoiron/sqlx"
)

// BootstrapSeed loads the sample competitions into an empty database so a
// fresh deployment answers with real-looking data. A database that already
// holds competitions is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM competitions`); err != nil {
		return fmt.Errorf("count competitions for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range memory.SeedCompetitions() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO competitions (id, name, category, level, tie_break, total_matchdays)
VALUES (:id, :name, :category, :level, :tie_break, :total_matchdays)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":              c.ID,
			"name":            c.Name,
			"category":        c.Category,
			"level":           c.Level,
			"tie_break":       string(c.TieBreak),
			"total_matchdays": c.TotalMatchdays,
		})
		if err != nil {
			return fmt.Errorf("bind seed competition %s query: %w", c.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed competition %s: %w", c.ID, err)
		}
	}

	for _, m := range memory.SeedMatches() {
		row := matchToInsert(m)
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO matches (id, competition_id, pool, matchday, match_date,
                     home_team_id, home_team_name, away_team_id, away_team_name,
                     home_goals, away_goals, status)
VALUES (:id, :competition_id, :pool, :matchday, :match_date,
        :home_team_id, :home_team_name, :away_team_id, :away_team_name,
        :home_goals, :away_goals, :status)
ON CONFLICT (id) DO NOTHING`, row)
		if err != nil {
			return fmt.Errorf("bind seed match %s query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	for _, p := range memory.SeedPenalties() {
		row := penaltyToInsert(p)
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO penalties (competition_id, team_id, points, effective_date, reason)
VALUES (:competition_id, :team_id, :points, :effective_date, :reason)`, row)
		if err != nil {
			return fmt.Errorf("bind seed penalty %s/%s query: %w", p.CompetitionID, p.TeamID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed penalty %s/%s: %w", p.CompetitionID, p.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
