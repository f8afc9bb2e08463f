package httpapi

import (
	"time"

	"github.com/datafoot/standings-engine/internal/domain/competition"
	"github.com/datafoot/standings-engine/internal/domain/match"
	"github.com/datafoot/standings-engine/internal/domain/standings"
)

type competitionDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Level          string `json:"level"`
	TieBreak       string `json:"tie_break"`
	TotalMatchdays int    `json:"total_matchdays,omitempty"`
}

func competitionToDTO(c competition.Competition) competitionDTO {
	return competitionDTO{
		ID:             c.ID,
		Name:           c.Name,
		Category:       c.Category,
		Level:          c.Level,
		TieBreak:       string(c.TieBreak),
		TotalMatchdays: c.TotalMatchdays,
	}
}

type standingRowDTO struct {
	TeamID        string   `json:"team_id"`
	TeamName      string   `json:"team_name"`
	Rank          int      `json:"rank"`
	Played        int      `json:"played"`
	Won           int      `json:"won"`
	Drawn         int      `json:"drawn"`
	Lost          int      `json:"lost"`
	GoalsFor      int      `json:"goals_for"`
	GoalsAgainst  int      `json:"goals_against"`
	GoalDiff      int      `json:"goal_diff"`
	RawPoints     int      `json:"raw_points"`
	PenaltyPoints int      `json:"penalty_points,omitempty"`
	Points        int      `json:"points"`
	SubRank       int      `json:"sub_rank,omitempty"`
	Difficulty    *float64 `json:"difficulty,omitempty"`
}

type poolStandingsDTO struct {
	Pool string           `json:"pool"`
	Rows []standingRowDTO `json:"rows"`
}

func tableToDTO(table standings.Table, withDifficulty bool) []poolStandingsDTO {
	out := make([]poolStandingsDTO, 0, len(table))
	for _, pool := range table.Pools() {
		rows := table[pool]
		dto := poolStandingsDTO{Pool: pool, Rows: make([]standingRowDTO, 0, len(rows))}
		for _, row := range rows {
			item := standingRowDTO{
				TeamID:        row.TeamID,
				TeamName:      row.TeamName,
				Rank:          row.Rank,
				Played:        row.Played,
				Won:           row.Won,
				Drawn:         row.Drawn,
				Lost:          row.Lost,
				GoalsFor:      row.GoalsFor,
				GoalsAgainst:  row.GoalsAgainst,
				GoalDiff:      row.GoalDiff,
				RawPoints:     row.RawPoints,
				PenaltyPoints: row.PenaltyPoints,
				Points:        row.Points,
			}
			if row.SubRank != standings.SubRankNone {
				item.SubRank = row.SubRank
			}
			if withDifficulty {
				difficulty := row.Difficulty
				item.Difficulty = &difficulty
			}
			dto.Rows = append(dto.Rows, item)
		}
		out = append(out, dto)
	}
	return out
}

type miniRowDTO struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Points   int    `json:"points"`
	GoalDiff int    `json:"goal_diff"`
	SubRank  int    `json:"sub_rank"`
}

type tieGroupDTO struct {
	Pool     string       `json:"pool"`
	Points   int          `json:"points"`
	Rows     []miniRowDTO `json:"rows"`
	MatchIDs []string     `json:"match_ids,omitempty"`
}

func tieGroupsToDTO(groups []standings.TieGroup) []tieGroupDTO {
	if len(groups) == 0 {
		return nil
	}
	out := make([]tieGroupDTO, 0, len(groups))
	for _, group := range groups {
		dto := tieGroupDTO{
			Pool:     group.Pool,
			Points:   group.Points,
			Rows:     make([]miniRowDTO, 0, len(group.Rows)),
			MatchIDs: group.MatchIDs,
		}
		for _, row := range group.Rows {
			dto.Rows = append(dto.Rows, miniRowDTO{
				TeamID:   row.TeamID,
				TeamName: row.TeamName,
				Points:   row.Points,
				GoalDiff: row.GoalDiff,
				SubRank:  row.SubRank,
			})
		}
		out = append(out, dto)
	}
	return out
}

type warningDTO struct {
	Code    string `json:"code"`
	MatchID string `json:"match_id,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

func warningsToDTO(warnings []standings.Warning) []warningDTO {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]warningDTO, 0, len(warnings))
	for _, warning := range warnings {
		out = append(out, warningDTO{
			Code:    warning.Code,
			MatchID: warning.MatchID,
			Detail:  warning.Detail,
		})
	}
	return out
}

type matchDTO struct {
	ID           string `json:"id"`
	Pool         string `json:"pool,omitempty"`
	Matchday     int    `json:"matchday,omitempty"`
	Date         string `json:"date"`
	HomeTeamID   string `json:"home_team_id"`
	HomeTeamName string `json:"home_team_name"`
	AwayTeamID   string `json:"away_team_id"`
	AwayTeamName string `json:"away_team_name"`
	HomeGoals    *int   `json:"home_goals,omitempty"`
	AwayGoals    *int   `json:"away_goals,omitempty"`
	Status       string `json:"status"`
}

func matchesToDTO(matches []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchDTO{
			ID:           m.ID,
			Pool:         m.Pool,
			Matchday:     m.Matchday,
			Date:         m.Date.UTC().Format(time.RFC3339),
			HomeTeamID:   m.HomeTeamID,
			HomeTeamName: m.HomeTeamName,
			AwayTeamID:   m.AwayTeamID,
			AwayTeamName: m.AwayTeamName,
			HomeGoals:    m.HomeGoals,
			AwayGoals:    m.AwayGoals,
			Status:       m.Status,
		})
	}
	return out
}

type standingsResponse struct {
	CompetitionID string             `json:"competition_id"`
	Policy        string             `json:"policy,omitempty"`
	Simulated     bool               `json:"simulated,omitempty"`
	Pools         []poolStandingsDTO `json:"pools"`
	TieGroups     []tieGroupDTO      `json:"tie_groups,omitempty"`
	Warnings      []warningDTO       `json:"warnings,omitempty"`
}

type comparatorRowDTO struct {
	Pool     string `json:"pool"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Points   int    `json:"points"`
	Rank     int    `json:"rank"`
}

type comparatorResponse struct {
	CompetitionID string             `json:"competition_id"`
	Label         string             `json:"label"`
	TargetRank    int                `json:"target_rank"`
	BandLow       int                `json:"band_low"`
	BandHigh      int                `json:"band_high"`
	Direction     string             `json:"direction"`
	Rows          []comparatorRowDTO `json:"rows"`
}
