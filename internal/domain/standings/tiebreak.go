package standings

import (
	"sort"

	"github.com/datafoot/standings-engine/internal/domain/match"
)

// ResolveHeadToHead detects points-equal groups inside each pool and ranks
// every group through an isolated sub-table built only from the matches the
// tied teams played against each other, in that pool. Penalties do not apply
// inside the sub-table. Teams outside any group keep SubRankNone.
//
// The sub-table sorts on confrontation points, then confrontation goal
// difference; a tie still standing after both keys falls back to team ID
// ascending, which keeps the result deterministic across runs.
func ResolveHeadToHead(table Table, matches []match.Match) (Table, []TieGroup) {
	out := table.Clone()
	groups := make([]TieGroup, 0)

	for _, pool := range out.Pools() {
		rows := out[pool]

		byPoints := make(map[int][]int)
		for i, row := range rows {
			byPoints[row.Points] = append(byPoints[row.Points], i)
		}

		pointValues := make([]int, 0, len(byPoints))
		for points := range byPoints {
			pointValues = append(pointValues, points)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(pointValues)))

		for _, points := range pointValues {
			indexes := byPoints[points]
			if len(indexes) < 2 {
				continue
			}

			members := make(map[string]int, len(indexes))
			for _, idx := range indexes {
				members[rows[idx].TeamID] = idx
			}

			group := rankTieGroup(pool, points, rows, members, matches)
			for _, mini := range group.Rows {
				rows[members[mini.TeamID]].SubRank = mini.SubRank
			}
			groups = append(groups, group)
		}

		out[pool] = rows
	}

	return out, groups
}

func rankTieGroup(pool string, points int, rows []Row, members map[string]int, matches []match.Match) TieGroup {
	type confrontation struct {
		points   int
		goalDiff int
	}
	totals := make(map[string]confrontation, len(members))
	matchIDs := make([]string, 0)

	for _, m := range matches {
		if m.Pool != pool || !match.IsCompletedStatus(m.Status) || !m.HasScore() {
			continue
		}
		_, homeIn := members[m.HomeTeamID]
		_, awayIn := members[m.AwayTeamID]
		if !homeIn || !awayIn {
			continue
		}

		matchIDs = append(matchIDs, m.ID)

		home := totals[m.HomeTeamID]
		away := totals[m.AwayTeamID]
		home.goalDiff += *m.HomeGoals - *m.AwayGoals
		away.goalDiff += *m.AwayGoals - *m.HomeGoals
		switch {
		case *m.HomeGoals > *m.AwayGoals:
			home.points += pointsWin
		case *m.HomeGoals < *m.AwayGoals:
			away.points += pointsWin
		default:
			home.points += pointsDraw
			away.points += pointsDraw
		}
		totals[m.HomeTeamID] = home
		totals[m.AwayTeamID] = away
	}

	minis := make([]MiniRow, 0, len(members))
	for teamID, idx := range members {
		minis = append(minis, MiniRow{
			TeamID:   teamID,
			TeamName: rows[idx].TeamName,
			Points:   totals[teamID].points,
			GoalDiff: totals[teamID].goalDiff,
		})
	}

	sort.SliceStable(minis, func(i, j int) bool {
		if minis[i].Points != minis[j].Points {
			return minis[i].Points > minis[j].Points
		}
		if minis[i].GoalDiff != minis[j].GoalDiff {
			return minis[i].GoalDiff > minis[j].GoalDiff
		}
		return minis[i].TeamID < minis[j].TeamID
	})
	for i := range minis {
		minis[i].SubRank = i + 1
	}

	sort.Strings(matchIDs)

	return TieGroup{
		Pool:     pool,
		Points:   points,
		Rows:     minis,
		MatchIDs: matchIDs,
	}
}
