package postgres

import (
	"time"

	"github.com/datafoot/standings-engine/internal/domain/penalty"
)

type penaltyTableModel struct {
	ID            int64     `db:"id"`
	CompetitionID string    `db:"competition_id"`
	TeamID        string    `db:"team_id"`
	Points        int       `db:"points"`
	EffectiveDate time.Time `db:"effective_date"`
	Reason        string    `db:"reason"`
	CreatedAt     time.Time `db:"created_at"`
}

type penaltyInsertModel struct {
	CompetitionID string    `db:"competition_id"`
	TeamID        string    `db:"team_id"`
	Points        int       `db:"points"`
	EffectiveDate time.Time `db:"effective_date"`
	Reason        string    `db:"reason"`
}

func penaltyFromTable(row penaltyTableModel) penalty.Penalty {
	return penalty.Penalty{
		TeamID:        row.TeamID,
		CompetitionID: row.CompetitionID,
		Points:        row.Points,
		EffectiveDate: row.EffectiveDate,
		Reason:        row.Reason,
	}
}

func penaltyToInsert(p penalty.Penalty) penaltyInsertModel {
	return penaltyInsertModel{
		CompetitionID: p.CompetitionID,
		TeamID:        p.TeamID,
		Points:        p.Points,
		EffectiveDate: p.EffectiveDate,
		Reason:        p.Reason,
	}
}
