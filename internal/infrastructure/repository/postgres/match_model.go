package postgres

import (
	"time"

	"github.com/datafoot/standings-engine/internal/domain/match"
)

type matchTableModel struct {
	ID            string    `db:"id"`
	CompetitionID string    `db:"competition_id"`
	Pool          string    `db:"pool"`
	Matchday      int       `db:"matchday"`
	MatchDate     time.Time `db:"match_date"`
	HomeTeamID    string    `db:"home_team_id"`
	HomeTeamName  string    `db:"home_team_name"`
	AwayTeamID    string    `db:"away_team_id"`
	AwayTeamName  string    `db:"away_team_name"`
	HomeGoals     *int      `db:"home_goals"`
	AwayGoals     *int      `db:"away_goals"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type matchInsertModel struct {
	ID            string    `db:"id"`
	CompetitionID string    `db:"competition_id"`
	Pool          string    `db:"pool"`
	Matchday      int       `db:"matchday"`
	MatchDate     time.Time `db:"match_date"`
	HomeTeamID    string    `db:"home_team_id"`
	HomeTeamName  string    `db:"home_team_name"`
	AwayTeamID    string    `db:"away_team_id"`
	AwayTeamName  string    `db:"away_team_name"`
	HomeGoals     *int      `db:"home_goals"`
	AwayGoals     *int      `db:"away_goals"`
	Status        string    `db:"status"`
}

func matchFromTable(row matchTableModel) match.Match {
	return match.Match{
		ID:            row.ID,
		CompetitionID: row.CompetitionID,
		Pool:          row.Pool,
		Matchday:      row.Matchday,
		Date:          row.MatchDate,
		HomeTeamID:    row.HomeTeamID,
		HomeTeamName:  row.HomeTeamName,
		AwayTeamID:    row.AwayTeamID,
		AwayTeamName:  row.AwayTeamName,
		HomeGoals:     row.HomeGoals,
		AwayGoals:     row.AwayGoals,
		Status:        match.NormalizeStatus(row.Status),
	}
}

func matchToInsert(m match.Match) matchInsertModel {
	return matchInsertModel{
		ID:            m.ID,
		CompetitionID: m.CompetitionID,
		Pool:          m.Pool,
		Matchday:      m.Matchday,
		MatchDate:     m.Date,
		HomeTeamID:    m.HomeTeamID,
		HomeTeamName:  m.HomeTeamName,
		AwayTeamID:    m.AwayTeamID,
		AwayTeamName:  m.AwayTeamName,
		HomeGoals:     m.HomeGoals,
		AwayGoals:     m.AwayGoals,
		Status:        match.NormalizeStatus(m.Status),
	}
}
