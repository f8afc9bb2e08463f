package competition

import "strings"

// TieBreakPolicy selects how points-equal teams are separated.
type TieBreakPolicy string

const (
	// PolicyGeneral resolves equalities on overall goal difference, then goals scored.
	PolicyGeneral TieBreakPolicy = "GENERAL"
	// PolicyHeadToHead resolves equalities on an isolated sub-table built from
	// the confrontations between the tied teams only.
	PolicyHeadToHead TieBreakPolicy = "HEAD_TO_HEAD"
)

func NormalizePolicy(value string) TieBreakPolicy {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(PolicyHeadToHead), "PARTICULIERE":
		return PolicyHeadToHead
	default:
		return PolicyGeneral
	}
}

// Competition is one championship whose pools are ranked independently.
type Competition struct {
	ID       string
	Name     string
	Category string
	Level    string
	TieBreak TieBreakPolicy
	// TotalMatchdays is 0 for competitions scheduled by calendar date only;
	// a positive value means matchday-window scoping is meaningful.
	TotalMatchdays int
}

// RuleDirection orders a special-rule comparison table.
type RuleDirection string

const (
	DirectionDesc RuleDirection = "DESC"
	DirectionAsc  RuleDirection = "ASC"
)

// SpecialRule is a supplementary cross-pool comparison: the team at TargetRank
// in each pool is scored on its confrontations against the teams currently
// ranked within [BandLow, BandHigh] of the same pool.
type SpecialRule struct {
	CompetitionID string
	Label         string
	TargetRank    int
	BandLow       int
	BandHigh      int
	Direction     RuleDirection
}

// DefaultSpecialRules ships the four federation rules in force. They are
// configuration rows, not code: callers may pass their own table instead.
func DefaultSpecialRules() []SpecialRule {
	return []SpecialRule{
		{CompetitionID: "fra-national-2", Label: "13th place comparison", TargetRank: 13, BandLow: 8, BandHigh: 12, Direction: DirectionDesc},
		{CompetitionID: "fra-national-3", Label: "10th place comparison", TargetRank: 10, BandLow: 5, BandHigh: 9, Direction: DirectionDesc},
		{CompetitionID: "fra-u19-national", Label: "11th place comparison", TargetRank: 11, BandLow: 6, BandHigh: 10, Direction: DirectionDesc},
		{CompetitionID: "fra-u17-national", Label: "2nd place comparison", TargetRank: 2, BandLow: 1, BandHigh: 5, Direction: DirectionDesc},
	}
}

// RulesByCompetition indexes a rule table for lookup at comparator time.
func RulesByCompetition(rules []SpecialRule) map[string]SpecialRule {
	out := make(map[string]SpecialRule, len(rules))
	for _, rule := range rules {
		if rule.CompetitionID == "" {
			continue
		}
		out[rule.CompetitionID] = rule
	}
	return out
}
