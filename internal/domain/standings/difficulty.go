package standings

import (
	"math"

	"github.com/datafoot/standings-engine/internal/domain/match"
)

// ScheduleDifficulty enriches a ranked table with the average current rank
// of each team's remaining opponents, rounded to 2 decimal places. A team
// with no remaining fixture in the window scores 0.00. The enrichment never
// changes rank assignment.
func ScheduleDifficulty(table Table, remaining []match.Match) Table {
	out := table.Clone()

	rankByTeam := make(map[string]map[string]int, len(out))
	for pool, rows := range out {
		byTeam := make(map[string]int, len(rows))
		for _, row := range rows {
			byTeam[row.TeamID] = row.Rank
		}
		rankByTeam[pool] = byTeam
	}

	type tally struct {
		sum   int
		count int
	}
	opponents := make(map[string]map[string]*tally)

	addOpponent := func(pool, teamID, opponentID string) {
		ranks, ok := rankByTeam[pool]
		if !ok {
			return
		}
		opponentRank, ok := ranks[opponentID]
		if !ok {
			return
		}
		byTeam, ok := opponents[pool]
		if !ok {
			byTeam = make(map[string]*tally)
			opponents[pool] = byTeam
		}
		t, ok := byTeam[teamID]
		if !ok {
			t = &tally{}
			byTeam[teamID] = t
		}
		t.sum += opponentRank
		t.count++
	}

	for _, m := range remaining {
		if match.IsCompletedStatus(m.Status) {
			continue
		}
		addOpponent(m.Pool, m.HomeTeamID, m.AwayTeamID)
		addOpponent(m.Pool, m.AwayTeamID, m.HomeTeamID)
	}

	for pool, rows := range out {
		for i := range rows {
			rows[i].Difficulty = 0
			if t, ok := opponents[pool][rows[i].TeamID]; ok && t.count > 0 {
				mean := float64(t.sum) / float64(t.count)
				rows[i].Difficulty = math.Round(mean*100) / 100
			}
		}
		out[pool] = rows
	}

	return out
}
