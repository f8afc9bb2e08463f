package standings

import (
	"time"

	"github.com/datafoot/standings-engine/internal/domain/penalty"
)

// ApplyPenalties subtracts each team's active penalty total (effective date
// on or before the cutoff) from its raw points. Totals may be negative, in
// which case the subtraction turns into a bonus; there is no clamping at
// zero. A nil cutoff makes the stage an explicit no-op: penalty totals are
// recorded as 0 and adjusted points equal raw points.
func ApplyPenalties(table Table, penalties []penalty.Penalty, cutoff *time.Time) Table {
	out := table.Clone()

	var totals map[string]int
	if cutoff != nil {
		totals = penalty.TotalsAsOf(penalties, *cutoff)
	}

	for pool, rows := range out {
		for i := range rows {
			rows[i].PenaltyPoints = totals[rows[i].TeamID]
			rows[i].Points = rows[i].RawPoints - rows[i].PenaltyPoints
		}
		out[pool] = rows
	}

	return out
}
