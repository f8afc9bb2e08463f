package standings

import "sort"

// SubRankNone marks a row that belongs to no points-equal group. It sorts
// after every real sub-rank so untied teams never interfere with tied ones.
const SubRankNone = 999

// Row is one team's line in a pool table. Each pipeline stage returns fresh
// rows; nothing is mutated in place once handed to a caller.
type Row struct {
	Pool          string
	TeamID        string
	TeamName      string
	Played        int
	Won           int
	Drawn         int
	Lost          int
	GoalsFor      int
	GoalsAgainst  int
	GoalDiff      int
	RawPoints     int
	PenaltyPoints int
	// Points is the penalty-adjusted total every later stage sorts on.
	Points     int
	SubRank    int
	Rank       int
	Difficulty float64
}

// Table maps pool label to that pool's rows.
type Table map[string][]Row

// Pools returns the pool labels in ascending order.
func (t Table) Pools() []string {
	out := make([]string, 0, len(t))
	for pool := range t {
		out = append(out, pool)
	}
	sort.Strings(out)
	return out
}

// Clone copies the table so a stage can rewrite rows without touching the
// snapshot its caller still holds.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for pool, rows := range t {
		copied := make([]Row, len(rows))
		copy(copied, rows)
		out[pool] = copied
	}
	return out
}

// MiniRow is one line of an isolated head-to-head sub-table.
type MiniRow struct {
	TeamID   string
	TeamName string
	Points   int
	GoalDiff int
	SubRank  int
}

// TieGroup records one points-equal group and the sub-table that separated
// it. Groups exist only for the duration of a computation; they are returned
// for display, never persisted.
type TieGroup struct {
	Pool     string
	Points   int
	Rows     []MiniRow
	MatchIDs []string
}

// ComparatorRow is one line of a special-rule side table: the team holding
// the rule's target rank in its pool, scored on the restricted confrontations.
type ComparatorRow struct {
	Pool     string
	TeamID   string
	TeamName string
	Points   int
	Rank     int
}

const (
	WarningMalformedScore    = "malformed_score"
	WarningMalformedOverride = "malformed_override"
)

// Warning reports a row-level problem that was isolated instead of aborting
// the computation.
type Warning struct {
	Code    string
	MatchID string
	Detail  string
}
