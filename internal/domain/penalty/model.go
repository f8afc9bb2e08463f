package penalty

import "time"

// Penalty is an administrative point adjustment for a team. Points is
// subtracted from the aggregated total: positive values are deductions,
// negative values are bonuses.
type Penalty struct {
	TeamID        string
	CompetitionID string
	Points        int
	EffectiveDate time.Time
	Reason        string
}

// TotalsAsOf sums penalties per team, keeping only records whose effective
// date is on or before the cutoff.
func TotalsAsOf(penalties []Penalty, cutoff time.Time) map[string]int {
	out := make(map[string]int)
	for _, p := range penalties {
		if p.EffectiveDate.After(cutoff) {
			continue
		}
		out[p.TeamID] += p.Points
	}
	return out
}
