package memory

import (
	"time"

	"github.com/datafoot/standings-engine/internal/domain/competition"
	"github.com/datafoot/standings-engine/internal/domain/match"
	"github.com/datafoot/standings-engine/internal/domain/penalty"
)

const (
	CompetitionIDNational2   = "fra-national-2"
	CompetitionIDNational3   = "fra-national-3"
	CompetitionIDU19National = "fra-u19-national"
	CompetitionIDU17National = "fra-u17-national"
)

func SeedCompetitions() []competition.Competition {
	return []competition.Competition{
		{
			ID:             CompetitionIDNational2,
			Name:           "National 2",
			Category:       "senior",
			Level:          "4",
			TieBreak:       competition.PolicyHeadToHead,
			TotalMatchdays: 30,
		},
		{
			ID:             CompetitionIDNational3,
			Name:           "National 3",
			Category:       "senior",
			Level:          "5",
			TieBreak:       competition.PolicyHeadToHead,
			TotalMatchdays: 26,
		},
		{
			ID:             CompetitionIDU19National,
			Name:           "Championnat National U19",
			Category:       "u19",
			Level:          "1",
			TieBreak:       competition.PolicyGeneral,
			TotalMatchdays: 26,
		},
		{
			ID:             CompetitionIDU17National,
			Name:           "Championnat National U17",
			Category:       "u17",
			Level:          "1",
			TieBreak:       competition.PolicyGeneral,
			TotalMatchdays: 26,
		},
	}
}

func seedMatch(id, competitionID, pool string, matchday int, date time.Time, homeID, homeName, awayID, awayName string, homeGoals, awayGoals int) match.Match {
	hg, ag := homeGoals, awayGoals
	return match.Match{
		ID:            id,
		CompetitionID: competitionID,
		Pool:          pool,
		Matchday:      matchday,
		Date:          date,
		HomeTeamID:    homeID,
		HomeTeamName:  homeName,
		AwayTeamID:    awayID,
		AwayTeamName:  awayName,
		HomeGoals:     &hg,
		AwayGoals:     &ag,
		Status:        match.StatusCompleted,
	}
}

// SeedMatches ships a small National 2 pool A sample so the API answers
// meaningfully before any feed sync has run.
func SeedMatches() []match.Match {
	day := func(offset int) time.Time {
		return time.Date(2025, time.August, 16, 18, 0, 0, 0, time.UTC).AddDate(0, 0, offset*7)
	}

	matches := []match.Match{
		seedMatch("n2-a-001", CompetitionIDNational2, "A", 1, day(0), "fra-n2-avranches", "US Avranches", "fra-n2-concarneau", "US Concarneau", 2, 1),
		seedMatch("n2-a-002", CompetitionIDNational2, "A", 1, day(0), "fra-n2-vannes", "Vannes OC", "fra-n2-stmalo", "US Saint-Malo", 1, 1),
		seedMatch("n2-a-003", CompetitionIDNational2, "A", 2, day(1), "fra-n2-concarneau", "US Concarneau", "fra-n2-vannes", "Vannes OC", 0, 0),
		seedMatch("n2-a-004", CompetitionIDNational2, "A", 2, day(1), "fra-n2-stmalo", "US Saint-Malo", "fra-n2-avranches", "US Avranches", 0, 2),
		seedMatch("n2-a-005", CompetitionIDNational2, "A", 3, day(2), "fra-n2-avranches", "US Avranches", "fra-n2-vannes", "Vannes OC", 1, 1),
		seedMatch("n2-a-006", CompetitionIDNational2, "A", 3, day(2), "fra-n2-concarneau", "US Concarneau", "fra-n2-stmalo", "US Saint-Malo", 3, 0),
	}

	// Return legs still to be played.
	matches = append(matches,
		match.Match{
			ID: "n2-a-007", CompetitionID: CompetitionIDNational2, Pool: "A",
			Matchday: 4, Date: day(3),
			HomeTeamID: "fra-n2-vannes", HomeTeamName: "Vannes OC",
			AwayTeamID: "fra-n2-avranches", AwayTeamName: "US Avranches",
			Status: match.StatusScheduled,
		},
		match.Match{
			ID: "n2-a-008", CompetitionID: CompetitionIDNational2, Pool: "A",
			Matchday: 4, Date: day(3),
			HomeTeamID: "fra-n2-stmalo", HomeTeamName: "US Saint-Malo",
			AwayTeamID: "fra-n2-concarneau", AwayTeamName: "US Concarneau",
			Status: match.StatusScheduled,
		},
	)

	return matches
}

func SeedPenalties() []penalty.Penalty {
	return []penalty.Penalty{
		{
			TeamID:        "fra-n2-stmalo",
			CompetitionID: CompetitionIDNational2,
			Points:        1,
			EffectiveDate: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
			Reason:        "forfeit fine",
		},
	}
}
