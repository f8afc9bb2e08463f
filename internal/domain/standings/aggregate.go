package standings

import (
	"errors"
	"fmt"
	"sort"

	"github.com/datafoot/standings-engine/internal/domain/match"
)

var (
	// ErrEmptyScope means the requested window yielded no countable match.
	ErrEmptyScope = errors.New("no completed matches in scope")
	// ErrUnresolvedOverride means a simulation referenced an unknown match.
	ErrUnresolvedOverride = errors.New("override references unknown match")
)

const (
	pointsWin  = 3
	pointsDraw = 1
)

// sideResult is one team-perspective view of a match: goals already
// sign-flipped for the away side.
type sideResult struct {
	goalsFor     int
	goalsAgainst int
}

func (r sideResult) points() int {
	switch {
	case r.goalsFor > r.goalsAgainst:
		return pointsWin
	case r.goalsFor == r.goalsAgainst:
		return pointsDraw
	default:
		return 0
	}
}

// Aggregate folds the contributing matches into per-pool, per-team raw
// statistics. Only completed matches count. A completed match with a missing
// or negative goal count is skipped and reported as a warning; it never
// aborts the computation. Aggregate fails with ErrEmptyScope when nothing
// contributed at all.
func Aggregate(matches []match.Match) (Table, []Warning, error) {
	table := make(Table)
	warnings := make([]Warning, 0)
	rowIndex := make(map[string]map[string]int)
	contributed := 0

	for _, m := range matches {
		if !match.IsCompletedStatus(m.Status) {
			continue
		}
		if !m.HasScore() {
			warnings = append(warnings, Warning{
				Code:    WarningMalformedScore,
				MatchID: m.ID,
				Detail:  "completed match without both goal counts",
			})
			continue
		}
		if *m.HomeGoals < 0 || *m.AwayGoals < 0 {
			warnings = append(warnings, Warning{
				Code:    WarningMalformedScore,
				MatchID: m.ID,
				Detail:  fmt.Sprintf("negative goal count %d-%d", *m.HomeGoals, *m.AwayGoals),
			})
			continue
		}

		contributed++
		home := sideResult{goalsFor: *m.HomeGoals, goalsAgainst: *m.AwayGoals}
		away := sideResult{goalsFor: *m.AwayGoals, goalsAgainst: *m.HomeGoals}
		accumulate(table, rowIndex, m.Pool, m.HomeTeamID, m.HomeTeamName, home)
		accumulate(table, rowIndex, m.Pool, m.AwayTeamID, m.AwayTeamName, away)
	}

	if contributed == 0 {
		return nil, warnings, ErrEmptyScope
	}

	for pool, rows := range table {
		for i := range rows {
			rows[i].GoalDiff = rows[i].GoalsFor - rows[i].GoalsAgainst
			rows[i].Points = rows[i].RawPoints
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].TeamID < rows[j].TeamID
		})
		table[pool] = rows
	}

	return table, warnings, nil
}

func accumulate(table Table, rowIndex map[string]map[string]int, pool, teamID, teamName string, result sideResult) {
	byTeam, ok := rowIndex[pool]
	if !ok {
		byTeam = make(map[string]int)
		rowIndex[pool] = byTeam
	}

	idx, ok := byTeam[teamID]
	if !ok {
		table[pool] = append(table[pool], Row{
			Pool:     pool,
			TeamID:   teamID,
			TeamName: teamName,
			SubRank:  SubRankNone,
		})
		idx = len(table[pool]) - 1
		byTeam[teamID] = idx
	}

	row := &table[pool][idx]
	row.Played++
	row.GoalsFor += result.goalsFor
	row.GoalsAgainst += result.goalsAgainst
	switch result.points() {
	case pointsWin:
		row.Won++
		row.RawPoints += pointsWin
	case pointsDraw:
		row.Drawn++
		row.RawPoints += pointsDraw
	default:
		row.Lost++
	}
}
