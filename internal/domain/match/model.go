package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusCompleted = "COMPLETED"
	StatusPostponed = "POSTPONED"
	StatusCancelled = "CANCELLED"
)

// Match is one fixture between two teams of a competition pool.
// Goal counts stay nil until the match has been played (or simulated).
type Match struct {
	ID            string
	CompetitionID string
	Pool          string
	// Matchday is 0 when the competition schedules by date only.
	Matchday     int
	Date         time.Time
	HomeTeamID   string
	HomeTeamName string
	AwayTeamID   string
	AwayTeamName string
	HomeGoals    *int
	AwayGoals    *int
	Status       string
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsCompletedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCompleted, "TERMINE", "FT", "FINISHED":
		return true
	default:
		return false
	}
}

// HasScore reports whether both goal counts are present.
func (m Match) HasScore() bool {
	return m.HomeGoals != nil && m.AwayGoals != nil
}

// Scope narrows a computation to matches up to a cutoff date (inclusive) or
// within a matchday window (inclusive on both ends). Exactly one of the two
// must be set; validation happens before any computation starts.
type Scope struct {
	CutoffDate  *time.Time
	MatchdayMin *int
	MatchdayMax *int
}

func ByCutoff(cutoff time.Time) Scope {
	return Scope{CutoffDate: &cutoff}
}

func ByMatchdays(min, max int) Scope {
	return Scope{MatchdayMin: &min, MatchdayMax: &max}
}

func (s Scope) HasCutoff() bool {
	return s.CutoffDate != nil
}

func (s Scope) HasMatchdayWindow() bool {
	return s.MatchdayMin != nil && s.MatchdayMax != nil
}

// IsEmpty reports an unconstrained scope (every match of the competition).
func (s Scope) IsEmpty() bool {
	return s.CutoffDate == nil && s.MatchdayMin == nil && s.MatchdayMax == nil
}

// Contains applies the scope filter to a single match with inclusive semantics.
func (s Scope) Contains(m Match) bool {
	if s.HasCutoff() && m.Date.After(*s.CutoffDate) {
		return false
	}
	if s.HasMatchdayWindow() {
		if m.Matchday < *s.MatchdayMin || m.Matchday > *s.MatchdayMax {
			return false
		}
	}
	return true
}
