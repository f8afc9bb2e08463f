package standings

import (
	"sort"

	"github.com/datafoot/standings-engine/internal/domain/competition"
)

// Rank sorts every pool and assigns a dense 1..N rank. Under PolicyGeneral
// the order is adjusted points, goal difference, goals scored. Under
// PolicyHeadToHead the confrontation sub-rank separates points-equal teams
// before goal difference is even looked at: sub-rank 1 is the best of its
// tied group. Every row gets a unique rank; a tie surviving all listed keys
// is broken on team ID ascending.
func Rank(table Table, policy competition.TieBreakPolicy) Table {
	out := table.Clone()

	for pool, rows := range out {
		sort.SliceStable(rows, func(i, j int) bool {
			return lessRow(rows[i], rows[j], policy)
		})
		for i := range rows {
			rows[i].Rank = i + 1
		}
		out[pool] = rows
	}

	return out
}

func lessRow(a, b Row, policy competition.TieBreakPolicy) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if policy == competition.PolicyHeadToHead && a.SubRank != b.SubRank {
		return a.SubRank < b.SubRank
	}
	if a.GoalDiff != b.GoalDiff {
		return a.GoalDiff > b.GoalDiff
	}
	if a.GoalsFor != b.GoalsFor {
		return a.GoalsFor > b.GoalsFor
	}
	return a.TeamID < b.TeamID
}
