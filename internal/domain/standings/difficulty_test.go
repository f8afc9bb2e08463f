package standings

import (
	"testing"

	"github.com/datafoot/standings-engine/internal/domain/match"
)

func TestScheduleDifficulty_MeanOpponentRank(t *testing.T) {
	table := Table{
		"A": {
			{Pool: "A", TeamID: "t1", Rank: 1},
			{Pool: "A", TeamID: "t2", Rank: 2},
			{Pool: "A", TeamID: "t3", Rank: 3},
			{Pool: "A", TeamID: "t4", Rank: 4},
		},
	}
	remaining := []match.Match{
		scheduled("m1", "A", "t1", "t2"),
		scheduled("m2", "A", "t1", "t3"),
		scheduled("m3", "A", "t4", "t1"),
	}

	out := ScheduleDifficulty(table, remaining)

	// t1 faces ranks 2, 3, 4 -> mean 3.00.
	if got := rowByTeam(t, out, "A", "t1").Difficulty; got != 3.00 {
		t.Fatalf("t1 difficulty: got=%v want=3.00", got)
	}
	// t2 faces only rank 1.
	if got := rowByTeam(t, out, "A", "t2").Difficulty; got != 1.00 {
		t.Fatalf("t2 difficulty: got=%v want=1.00", got)
	}
}

func TestScheduleDifficulty_RoundsToTwoDecimals(t *testing.T) {
	table := Table{
		"A": {
			{Pool: "A", TeamID: "t1", Rank: 1},
			{Pool: "A", TeamID: "t2", Rank: 2},
			{Pool: "A", TeamID: "t3", Rank: 3},
			{Pool: "A", TeamID: "t4", Rank: 6},
		},
	}
	// t1 faces ranks 2, 3, 6 -> mean 11/3 = 3.666... -> 3.67.
	remaining := []match.Match{
		scheduled("m1", "A", "t1", "t2"),
		scheduled("m2", "A", "t1", "t3"),
		scheduled("m3", "A", "t1", "t4"),
	}

	out := ScheduleDifficulty(table, remaining)
	if got := rowByTeam(t, out, "A", "t1").Difficulty; got != 3.67 {
		t.Fatalf("t1 difficulty: got=%v want=3.67", got)
	}
}

func TestScheduleDifficulty_NoRemainingFixturesIsZero(t *testing.T) {
	table := Table{
		"A": {
			{Pool: "A", TeamID: "t1", Rank: 1},
			{Pool: "A", TeamID: "t2", Rank: 2},
		},
	}
	// Completed matches are not remaining fixtures.
	remaining := []match.Match{played("m1", "A", "t1", "t2", 1, 0)}

	out := ScheduleDifficulty(table, remaining)
	for _, teamID := range []string{"t1", "t2"} {
		if got := rowByTeam(t, out, "A", teamID).Difficulty; got != 0 {
			t.Fatalf("%s difficulty: got=%v want=0.00", teamID, got)
		}
	}
}

func TestScheduleDifficulty_UnknownOpponentIgnored(t *testing.T) {
	table := Table{
		"A": {
			{Pool: "A", TeamID: "t1", Rank: 1},
			{Pool: "A", TeamID: "t2", Rank: 2},
		},
	}
	remaining := []match.Match{
		scheduled("m1", "A", "t1", "t2"),
		scheduled("m2", "A", "t1", "ghost"),
	}

	out := ScheduleDifficulty(table, remaining)
	if got := rowByTeam(t, out, "A", "t1").Difficulty; got != 2.00 {
		t.Fatalf("opponent without a rank must not count: got=%v want=2.00", got)
	}
}
