package standings

import (
	"errors"
	"testing"

	"github.com/datafoot/standings-engine/internal/domain/match"
)

func played(id, pool, homeID, awayID string, homeGoals, awayGoals int) match.Match {
	hg, ag := homeGoals, awayGoals
	return match.Match{
		ID:           id,
		Pool:         pool,
		HomeTeamID:   homeID,
		HomeTeamName: "Team " + homeID,
		AwayTeamID:   awayID,
		AwayTeamName: "Team " + awayID,
		HomeGoals:    &hg,
		AwayGoals:    &ag,
		Status:       match.StatusCompleted,
	}
}

func scheduled(id, pool, homeID, awayID string) match.Match {
	return match.Match{
		ID:           id,
		Pool:         pool,
		HomeTeamID:   homeID,
		HomeTeamName: "Team " + homeID,
		AwayTeamID:   awayID,
		AwayTeamName: "Team " + awayID,
		Status:       match.StatusScheduled,
	}
}

func rowByTeam(t *testing.T, table Table, pool, teamID string) Row {
	t.Helper()
	for _, row := range table[pool] {
		if row.TeamID == teamID {
			return row
		}
	}
	t.Fatalf("team %s not found in pool %s", teamID, pool)
	return Row{}
}

func TestAggregate_PointsSumPerMatch(t *testing.T) {
	matches := []match.Match{
		played("m1", "A", "t1", "t2", 2, 0),
		played("m2", "A", "t3", "t4", 1, 1),
	}

	table, warnings, err := Aggregate(matches)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}

	decisive := rowByTeam(t, table, "A", "t1").RawPoints + rowByTeam(t, table, "A", "t2").RawPoints
	if decisive != 3 {
		t.Fatalf("decisive match must award 3 points total, got=%d", decisive)
	}
	draw := rowByTeam(t, table, "A", "t3").RawPoints + rowByTeam(t, table, "A", "t4").RawPoints
	if draw != 2 {
		t.Fatalf("drawn match must award 2 points total, got=%d", draw)
	}
}

func TestAggregate_SkipsNonCompletedMatches(t *testing.T) {
	matches := []match.Match{
		played("m1", "A", "t1", "t2", 1, 0),
		scheduled("m2", "A", "t1", "t3"),
		{ID: "m3", Pool: "A", HomeTeamID: "t2", AwayTeamID: "t3", Status: match.StatusPostponed},
	}

	table, warnings, err := Aggregate(matches)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
	if len(table["A"]) != 2 {
		t.Fatalf("only the completed match's teams should appear, got=%d rows", len(table["A"]))
	}
	if got := rowByTeam(t, table, "A", "t1").Played; got != 1 {
		t.Fatalf("unexpected played count: got=%d want=1", got)
	}
}

func TestAggregate_MalformedScoresAreWarningsNotFailures(t *testing.T) {
	noScore := match.Match{ID: "m2", Pool: "A", HomeTeamID: "t1", AwayTeamID: "t3", Status: match.StatusCompleted}
	matches := []match.Match{
		played("m1", "A", "t1", "t2", 2, 1),
		noScore,
		played("m3", "A", "t2", "t3", -1, 0),
	}

	table, warnings, err := Aggregate(matches)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got=%d (%+v)", len(warnings), warnings)
	}
	for _, w := range warnings {
		if w.Code != WarningMalformedScore {
			t.Fatalf("unexpected warning code: %s", w.Code)
		}
	}
	if got := rowByTeam(t, table, "A", "t2").Played; got != 1 {
		t.Fatalf("malformed match must not contribute: t2 played=%d want=1", got)
	}
}

func TestAggregate_EmptyScope(t *testing.T) {
	_, _, err := Aggregate([]match.Match{scheduled("m1", "A", "t1", "t2")})
	if !errors.Is(err, ErrEmptyScope) {
		t.Fatalf("expected ErrEmptyScope, got=%v", err)
	}

	_, _, err = Aggregate(nil)
	if !errors.Is(err, ErrEmptyScope) {
		t.Fatalf("expected ErrEmptyScope for no input, got=%v", err)
	}
}

func TestAggregate_PoolsStayIsolated(t *testing.T) {
	matches := []match.Match{
		played("m1", "A", "t1", "t2", 2, 0),
		played("m2", "B", "t1", "t3", 0, 2),
	}

	table, _, err := Aggregate(matches)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	if got := rowByTeam(t, table, "A", "t1").RawPoints; got != 3 {
		t.Fatalf("pool A points leaked: got=%d want=3", got)
	}
	if got := rowByTeam(t, table, "B", "t1").RawPoints; got != 0 {
		t.Fatalf("pool B points leaked: got=%d want=0", got)
	}
}
