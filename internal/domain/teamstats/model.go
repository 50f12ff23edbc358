package teamstats

import "github.com/riskibarqy/hoops-ledger/internal/domain/playerstats"

// MatchBox is the sum of a team's player lines in one match.
type MatchBox struct {
	MatchID   string
	TeamID    string
	StartYear int
	Win       bool
	playerstats.Box
	playerstats.Shooting
}

// Advanced holds the derived metrics of a team season.
type Advanced struct {
	WinRate               float64
	TrueShootingPct       float64
	AssistRatio           float64
	OffensiveReboundRatio float64
	Possessions           float64
	Pace                  float64
	OffensiveRating       float64
}

// SeasonSummary is one row per (team, start year).
type SeasonSummary struct {
	TeamID    string
	TeamName  string
	StartYear int
	Games     int
	Wins      int
	Totals    playerstats.Box
	Averages  playerstats.Box
	Shooting  playerstats.Shooting

	// ShootingAverages are per-game means of the made/attempted totals.
	ShootingAverages ShootingAverages
	Advanced         Advanced
}

type ShootingAverages struct {
	TwoMade        float64
	TwoAttempted   float64
	ThreeMade      float64
	ThreeAttempted float64
	FreeMade       float64
	FreeAttempted  float64
}
