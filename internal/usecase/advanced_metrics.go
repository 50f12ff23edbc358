package usecase

import (
	"math"

	"github.com/riskibarqy/hoops-ledger/internal/domain/playerstats"
	"github.com/riskibarqy/hoops-ledger/internal/domain/teamstats"
)

// metricEpsilon is added to every ratio denominator.
const metricEpsilon = 0.001

// freeThrowWeight converts free-throw attempts into possessions.
const freeThrowWeight = 0.44

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// guardedDiv returns num / (den + epsilon), or 0 when that is not a finite number.
func guardedDiv(num, den float64) float64 {
	d := den + metricEpsilon
	if d == 0 {
		return 0
	}
	r := num / d
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

func percentage(part, whole float64) float64 {
	return round2(guardedDiv(part, whole) * 100)
}

// PlayerAdvanced derives the efficiency metrics of a player season from its totals.
func PlayerAdvanced(totals playerstats.Box, shooting playerstats.Shooting) playerstats.Advanced {
	fga := float64(shooting.FieldGoalsAttempted())
	fgm := float64(shooting.FieldGoalsMade())
	fta := float64(shooting.FreeAttempted)

	possessionsEnded := fga + freeThrowWeight*fta + totals.Turnovers
	return playerstats.Advanced{
		TrueShootingPct:     round2(trueShooting(totals.Points, fga, fta)),
		EffectiveFGPct:      round2(guardedDiv(fgm+0.5*float64(shooting.ThreeMade), fga) * 100),
		AssistTurnoverRatio: round2(guardedDiv(totals.Assists, totals.Turnovers)),
		ValuationPerMinute:  round2(guardedDiv(totals.Valuation, totals.Minutes)),
		PossessionsEnded:    round2(possessionsEnded),
		OffensiveRating:     round2(guardedDiv(totals.Points, possessionsEnded) * 100),
	}
}

// TeamAdvanced derives the team season metrics. Possessions subtract offensive rebounds.
func TeamAdvanced(totals playerstats.Box, shooting playerstats.Shooting, games, wins int) teamstats.Advanced {
	fga := float64(shooting.FieldGoalsAttempted())
	fta := float64(shooting.FreeAttempted)

	possessionsEnded := fga + freeThrowWeight*fta + totals.Turnovers
	possessions := possessionsEnded - totals.OffRebounds

	out := teamstats.Advanced{
		TrueShootingPct:       round2(trueShooting(totals.Points, fga, fta)),
		AssistRatio:           round2(guardedDiv(totals.Assists*100, possessionsEnded)),
		OffensiveReboundRatio: round2(guardedDiv(totals.OffRebounds, totals.Rebounds) * 100),
		Possessions:           round2(possessions),
		OffensiveRating:       round2(guardedDiv(totals.Points, possessions) * 100),
	}
	if games > 0 {
		out.WinRate = round2(float64(wins) / float64(games) * 100)
		out.Pace = round2(possessions / float64(games))
	}
	return out
}

func trueShooting(points, fga, fta float64) float64 {
	d := 2 * (fga + freeThrowWeight*fta + metricEpsilon)
	if d == 0 {
		return 0
	}
	r := points / d * 100
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
