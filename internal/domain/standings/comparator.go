package standings

import (
	"sort"

	"github.com/datafoot/standings-engine/internal/domain/competition"
	"github.com/datafoot/standings-engine/internal/domain/match"
)

// Compare evaluates a special rule against a ranked table: in every pool the
// team at the rule's target rank is scored on its confrontations against the
// teams currently ranked inside [BandLow, BandHigh] of the same pool, with
// the usual 3/1/0 scale. The resulting side table ranks the target-rank
// holders across pools and never touches the main standings.
//
// Confrontations are matched on team identifiers, never display names, so
// same-named teams in different pools cannot cross-pollute the comparison.
func Compare(rule competition.SpecialRule, table Table, matches []match.Match) []ComparatorRow {
	out := make([]ComparatorRow, 0, len(table))

	for _, pool := range table.Pools() {
		rows := table[pool]

		var target *Row
		band := make(map[string]struct{})
		for i := range rows {
			if rows[i].Rank == rule.TargetRank {
				target = &rows[i]
			}
			if rows[i].Rank >= rule.BandLow && rows[i].Rank <= rule.BandHigh {
				band[rows[i].TeamID] = struct{}{}
			}
		}
		if target == nil {
			continue
		}

		points := 0
		for _, m := range matches {
			if m.Pool != pool || !match.IsCompletedStatus(m.Status) || !m.HasScore() {
				continue
			}

			var scored, conceded int
			switch {
			case m.HomeTeamID == target.TeamID:
				if _, ok := band[m.AwayTeamID]; !ok {
					continue
				}
				scored, conceded = *m.HomeGoals, *m.AwayGoals
			case m.AwayTeamID == target.TeamID:
				if _, ok := band[m.HomeTeamID]; !ok {
					continue
				}
				scored, conceded = *m.AwayGoals, *m.HomeGoals
			default:
				continue
			}

			switch {
			case scored > conceded:
				points += pointsWin
			case scored == conceded:
				points += pointsDraw
			}
		}

		out = append(out, ComparatorRow{
			Pool:     pool,
			TeamID:   target.TeamID,
			TeamName: target.TeamName,
			Points:   points,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			if rule.Direction == competition.DirectionAsc {
				return out[i].Points < out[j].Points
			}
			return out[i].Points > out[j].Points
		}
		return out[i].Pool < out[j].Pool
	})

	// Min-rank over ties: two pools on equal points share a rank and the
	// next one skips ahead.
	for i := range out {
		if i > 0 && out[i].Points == out[i-1].Points {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}

	return out
}
