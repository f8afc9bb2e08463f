package postgres

import "time"

type competitionTableModel struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Category       string    `db:"category"`
	Level          string    `db:"level"`
	TieBreak       string    `db:"tie_break"`
	TotalMatchdays int       `db:"total_matchdays"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
