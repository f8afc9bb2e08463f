package standings

import (
	"testing"
	"time"

	"github.com/datafoot/standings-engine/internal/domain/match"
	"github.com/datafoot/standings-engine/internal/domain/penalty"
)

func TestApplyPenalties_CutoffInclusive(t *testing.T) {
	table, _, err := Aggregate([]match.Match{
		played("m1", "A", "t1", "t2", 2, 0),
		played("m2", "A", "t1", "t3", 1, 0),
	})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	cutoff := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	penalties := []penalty.Penalty{
		{TeamID: "t1", Points: 3, EffectiveDate: cutoff},                    // same day counts
		{TeamID: "t1", Points: 1, EffectiveDate: cutoff.AddDate(0, 0, 1)},   // after cutoff, ignored
		{TeamID: "t2", Points: 2, EffectiveDate: cutoff.AddDate(0, -1, 0)},  // before cutoff
		{TeamID: "t3", Points: -2, EffectiveDate: cutoff.AddDate(0, -1, 0)}, // negative acts as bonus
	}

	adjusted := ApplyPenalties(table, penalties, &cutoff)

	if got := rowByTeam(t, adjusted, "A", "t1"); got.PenaltyPoints != 3 || got.Points != 3 {
		t.Fatalf("t1 adjustment wrong: penalty=%d points=%d", got.PenaltyPoints, got.Points)
	}
	if got := rowByTeam(t, adjusted, "A", "t2"); got.Points != -2 {
		t.Fatalf("points must not be clamped at zero, got=%d", got.Points)
	}
	if got := rowByTeam(t, adjusted, "A", "t3"); got.Points != 2 {
		t.Fatalf("negative penalty must add points: got=%d want=2", got.Points)
	}

	// The input table is never mutated in place.
	if got := rowByTeam(t, table, "A", "t1").Points; got != 6 {
		t.Fatalf("input table mutated: got=%d want=6", got)
	}
}

func TestApplyPenalties_NilCutoffIsNoOp(t *testing.T) {
	table, _, err := Aggregate([]match.Match{played("m1", "A", "t1", "t2", 2, 0)})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	penalties := []penalty.Penalty{{TeamID: "t1", Points: 5, EffectiveDate: time.Now()}}
	adjusted := ApplyPenalties(table, penalties, nil)

	row := rowByTeam(t, adjusted, "A", "t1")
	if row.PenaltyPoints != 0 || row.Points != row.RawPoints {
		t.Fatalf("nil cutoff must leave points untouched: penalty=%d points=%d raw=%d",
			row.PenaltyPoints, row.Points, row.RawPoints)
	}
}
