package postgres

import (
	"github.com/riskibarqy/hoops-ledger/internal/domain/match"
	"github.com/riskibarqy/hoops-ledger/internal/domain/playerstats"
	"github.com/riskibarqy/hoops-ledger/internal/domain/teamstats"
)

type matchInsertModel struct {
	MatchID       string  `db:"match_id"`
	MatchDate     string  `db:"match_date"`
	Season        string  `db:"season"`
	StartYear     int     `db:"start_year"`
	Round         int     `db:"round"`
	HomeTeamID    string  `db:"home_team_id"`
	AwayTeamID    string  `db:"away_team_id"`
	HomeScore     int     `db:"home_score"`
	AwayScore     int     `db:"away_score"`
	HomeCoverage  float64 `db:"home_coverage"`
	HomeRebounds  int     `db:"home_rebounds"`
	HomeAssists   int     `db:"home_assists"`
	HomeSteals    int     `db:"home_steals"`
	HomeTurnovers int     `db:"home_turnovers"`
	HomeValuation int     `db:"home_valuation"`
	HomeThreePct  float64 `db:"home_three_pct"`
	AwayCoverage  float64 `db:"away_coverage"`
	AwayRebounds  int     `db:"away_rebounds"`
	AwayAssists   int     `db:"away_assists"`
	AwaySteals    int     `db:"away_steals"`
	AwayTurnovers int     `db:"away_turnovers"`
	AwayValuation int     `db:"away_valuation"`
	AwayThreePct  float64 `db:"away_three_pct"`
}

func matchModel(m match.Match) matchInsertModel {
	return matchInsertModel{
		MatchID:       m.ID,
		MatchDate:     m.Date,
		Season:        m.Season,
		StartYear:     m.StartYear,
		Round:         m.Round,
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		HomeScore:     m.HomeScore,
		AwayScore:     m.AwayScore,
		HomeCoverage:  m.Home.Coverage,
		HomeRebounds:  m.Home.Rebounds,
		HomeAssists:   m.Home.Assists,
		HomeSteals:    m.Home.Steals,
		HomeTurnovers: m.Home.Turnovers,
		HomeValuation: m.Home.Valuation,
		HomeThreePct:  m.Home.ThreePointPct,
		AwayCoverage:  m.Away.Coverage,
		AwayRebounds:  m.Away.Rebounds,
		AwayAssists:   m.Away.Assists,
		AwaySteals:    m.Away.Steals,
		AwayTurnovers: m.Away.Turnovers,
		AwayValuation: m.Away.Valuation,
		AwayThreePct:  m.Away.ThreePointPct,
	}
}

type matchStatInsertModel struct {
	MatchID        string  `db:"match_id"`
	PlayerID       string  `db:"player_id"`
	TeamID         string  `db:"team_id"`
	OpponentTeamID string  `db:"opponent_team_id"`
	Season         string  `db:"season"`
	StartYear      int     `db:"start_year"`
	Round          int     `db:"round"`
	Minutes        float64 `db:"minutes"`
	Points         float64 `db:"points"`
	Valuation      float64 `db:"valuation"`
	TwoMade        int     `db:"two_made"`
	TwoAttempted   int     `db:"two_attempted"`
	ThreeMade      int     `db:"three_made"`
	ThreeAttempted int     `db:"three_attempted"`
	FreeMade       int     `db:"free_made"`
	FreeAttempted  int     `db:"free_attempted"`
	OffRebounds    float64 `db:"off_rebounds"`
	DefRebounds    float64 `db:"def_rebounds"`
	Rebounds       float64 `db:"rebounds"`
	Assists        float64 `db:"assists"`
	Steals         float64 `db:"steals"`
	Blocks         float64 `db:"blocks"`
	Turnovers      float64 `db:"turnovers"`
	PlusMinus      float64 `db:"plus_minus"`
	FoulsCommitted float64 `db:"fouls_committed"`
	FoulsReceived  float64 `db:"fouls_received"`
	DoubleDouble   bool    `db:"double_double"`
}

func matchStatModel(s playerstats.MatchStat) matchStatInsertModel {
	return matchStatInsertModel{
		MatchID:        s.MatchID,
		PlayerID:       s.PlayerID,
		TeamID:         s.TeamID,
		OpponentTeamID: s.OpponentTeamID,
		Season:         s.Season,
		StartYear:      s.StartYear,
		Round:          s.Round,
		Minutes:        s.Minutes,
		Points:         s.Points,
		Valuation:      s.Valuation,
		TwoMade:        s.TwoMade,
		TwoAttempted:   s.TwoAttempted,
		ThreeMade:      s.ThreeMade,
		ThreeAttempted: s.ThreeAttempted,
		FreeMade:       s.FreeMade,
		FreeAttempted:  s.FreeAttempted,
		OffRebounds:    s.OffRebounds,
		DefRebounds:    s.DefRebounds,
		Rebounds:       s.Rebounds,
		Assists:        s.Assists,
		Steals:         s.Steals,
		Blocks:         s.Blocks,
		Turnovers:      s.Turnovers,
		PlusMinus:      s.PlusMinus,
		FoulsCommitted: s.FoulsCommitted,
		FoulsReceived:  s.FoulsReceived,
		DoubleDouble:   s.DoubleDouble,
	}
}

type playerSummaryInsertModel struct {
	PlayerID            string  `db:"player_id"`
	TeamID              string  `db:"team_id"`
	StartYear           int     `db:"start_year"`
	PlayerName          *string `db:"player_name"`
	Games               int     `db:"games"`
	DoubleDoubles       int     `db:"double_doubles"`
	Totals              string  `db:"totals"`
	Averages            string  `db:"averages"`
	Shooting            string  `db:"shooting"`
	TrueShootingPct     float64 `db:"ts_pct"`
	EffectiveFGPct      float64 `db:"efg_pct"`
	AssistTurnoverRatio float64 `db:"ast_to_ratio"`
	ValuationPerMinute  float64 `db:"valuation_per_minute"`
	PossessionsEnded    float64 `db:"possessions_ended"`
	OffensiveRating     float64 `db:"offensive_rating"`
}

func playerSummaryModel(s playerstats.SeasonSummary) playerSummaryInsertModel {
	return playerSummaryInsertModel{
		PlayerID:            s.PlayerID,
		TeamID:              s.TeamID,
		StartYear:           s.StartYear,
		PlayerName:          nullableString(s.PlayerName),
		Games:               s.Games,
		DoubleDoubles:       s.DoubleDoubles,
		Totals:              encodeJSONMap(boxFields(s.Totals)),
		Averages:            encodeJSONMap(boxFields(s.Averages)),
		Shooting:            encodeJSONMap(shootingFields(s.Shooting)),
		TrueShootingPct:     s.Advanced.TrueShootingPct,
		EffectiveFGPct:      s.Advanced.EffectiveFGPct,
		AssistTurnoverRatio: s.Advanced.AssistTurnoverRatio,
		ValuationPerMinute:  s.Advanced.ValuationPerMinute,
		PossessionsEnded:    s.Advanced.PossessionsEnded,
		OffensiveRating:     s.Advanced.OffensiveRating,
	}
}

type teamSummaryInsertModel struct {
	TeamID                string  `db:"team_id"`
	StartYear             int     `db:"start_year"`
	TeamName              *string `db:"team_name"`
	Games                 int     `db:"games"`
	Wins                  int     `db:"wins"`
	Totals                string  `db:"totals"`
	Averages              string  `db:"averages"`
	Shooting              string  `db:"shooting"`
	WinRate               float64 `db:"win_rate"`
	TrueShootingPct       float64 `db:"ts_pct"`
	AssistRatio           float64 `db:"ast_ratio"`
	OffensiveReboundRatio float64 `db:"oreb_ratio"`
	Possessions           float64 `db:"possessions"`
	Pace                  float64 `db:"pace"`
	OffensiveRating       float64 `db:"offensive_rating"`
}

func teamSummaryModel(s teamstats.SeasonSummary) teamSummaryInsertModel {
	return teamSummaryInsertModel{
		TeamID:                s.TeamID,
		StartYear:             s.StartYear,
		TeamName:              nullableString(s.TeamName),
		Games:                 s.Games,
		Wins:                  s.Wins,
		Totals:                encodeJSONMap(boxFields(s.Totals)),
		Averages:              encodeJSONMap(boxFields(s.Averages)),
		Shooting:              encodeJSONMap(shootingFields(s.Shooting)),
		WinRate:               s.Advanced.WinRate,
		TrueShootingPct:       s.Advanced.TrueShootingPct,
		AssistRatio:           s.Advanced.AssistRatio,
		OffensiveReboundRatio: s.Advanced.OffensiveReboundRatio,
		Possessions:           s.Advanced.Possessions,
		Pace:                  s.Advanced.Pace,
		OffensiveRating:       s.Advanced.OffensiveRating,
	}
}

func boxFields(b playerstats.Box) map[string]any {
	return map[string]any{
		"minutes":         b.Minutes,
		"points":          b.Points,
		"valuation":       b.Valuation,
		"assists":         b.Assists,
		"steals":          b.Steals,
		"turnovers":       b.Turnovers,
		"blocks":          b.Blocks,
		"off_rebounds":    b.OffRebounds,
		"def_rebounds":    b.DefRebounds,
		"rebounds":        b.Rebounds,
		"fouls_committed": b.FoulsCommitted,
		"fouls_received":  b.FoulsReceived,
		"plus_minus":      b.PlusMinus,
	}
}

func shootingFields(s playerstats.Shooting) map[string]any {
	return map[string]any{
		"two_made":        s.TwoMade,
		"two_attempted":   s.TwoAttempted,
		"three_made":      s.ThreeMade,
		"three_attempted": s.ThreeAttempted,
		"free_made":       s.FreeMade,
		"free_attempted":  s.FreeAttempted,
	}
}
