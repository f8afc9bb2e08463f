package standings

import (
	"testing"

	"github.com/datafoot/standings-engine/internal/domain/competition"
	"github.com/datafoot/standings-engine/internal/domain/match"
)

func TestRank_GeneralPolicyRoundRobin(t *testing.T) {
	// All-play-all once: A-B 2-0, C-D 1-1, A-C 0-0, B-D 3-1, A-D 1-1, B-C 2-2.
	matches := []match.Match{
		played("m1", "A", "ta", "tb", 2, 0),
		played("m2", "A", "tc", "td", 1, 1),
		played("m3", "A", "ta", "tc", 0, 0),
		played("m4", "A", "tb", "td", 3, 1),
		played("m5", "A", "ta", "td", 1, 1),
		played("m6", "A", "tb", "tc", 2, 2),
	}

	table, _, err := Aggregate(matches)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	ranked := Rank(table, competition.PolicyGeneral)

	wantPoints := map[string]int{"ta": 5, "tb": 4, "tc": 3, "td": 2}
	for teamID, want := range wantPoints {
		if got := rowByTeam(t, ranked, "A", teamID).Points; got != want {
			t.Fatalf("%s points: got=%d want=%d", teamID, got, want)
		}
	}

	wantOrder := []string{"ta", "tb", "tc", "td"}
	for i, teamID := range wantOrder {
		row := ranked["A"][i]
		if row.TeamID != teamID || row.Rank != i+1 {
			t.Fatalf("position %d: got team=%s rank=%d want team=%s rank=%d",
				i, row.TeamID, row.Rank, teamID, i+1)
		}
	}
}

func TestRank_DenseUniqueRanksPerPool(t *testing.T) {
	matches := []match.Match{
		played("m1", "A", "t1", "t2", 1, 1),
		played("m2", "A", "t3", "t4", 1, 1),
		played("m3", "B", "t5", "t6", 0, 0),
	}

	table, _, err := Aggregate(matches)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	ranked := Rank(table, competition.PolicyGeneral)

	for pool, rows := range ranked {
		seen := make(map[int]bool, len(rows))
		for _, row := range rows {
			if row.Rank < 1 || row.Rank > len(rows) {
				t.Fatalf("pool %s: rank %d outside 1..%d", pool, row.Rank, len(rows))
			}
			if seen[row.Rank] {
				t.Fatalf("pool %s: duplicate rank %d", pool, row.Rank)
			}
			seen[row.Rank] = true
		}
	}
}

func TestRank_GoalsForBreaksEqualGoalDiff(t *testing.T) {
	table := Table{
		"A": {
			{Pool: "A", TeamID: "t1", Points: 6, GoalDiff: 3, GoalsFor: 4, SubRank: SubRankNone},
			{Pool: "A", TeamID: "t2", Points: 6, GoalDiff: 3, GoalsFor: 9, SubRank: SubRankNone},
		},
	}

	ranked := Rank(table, competition.PolicyGeneral)
	if ranked["A"][0].TeamID != "t2" {
		t.Fatalf("higher goals-for must rank first, got=%s", ranked["A"][0].TeamID)
	}
}

func TestRank_SubRankAppliesBeforeGoalDiff(t *testing.T) {
	table := Table{
		"A": {
			{Pool: "A", TeamID: "t1", Points: 6, GoalDiff: 9, SubRank: 2},
			{Pool: "A", TeamID: "t2", Points: 6, GoalDiff: 0, SubRank: 1},
		},
	}

	general := Rank(table, competition.PolicyGeneral)
	if general["A"][0].TeamID != "t1" {
		t.Fatalf("GENERAL policy must ignore sub-rank, got=%s", general["A"][0].TeamID)
	}

	headToHead := Rank(table, competition.PolicyHeadToHead)
	if headToHead["A"][0].TeamID != "t2" {
		t.Fatalf("HEAD_TO_HEAD policy must sort on sub-rank first, got=%s", headToHead["A"][0].TeamID)
	}
}
