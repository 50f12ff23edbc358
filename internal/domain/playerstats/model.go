package playerstats

// Box holds the counting stats shared by stat lines, team boxes and season totals.
type Box struct {
	Minutes        float64
	Points         float64
	Valuation      float64
	Assists        float64
	Steals         float64
	Turnovers      float64
	Blocks         float64
	OffRebounds    float64
	DefRebounds    float64
	Rebounds       float64
	FoulsCommitted float64
	FoulsReceived  float64
	PlusMinus      float64
}

func (b Box) Add(o Box) Box {
	return Box{
		Minutes:        b.Minutes + o.Minutes,
		Points:         b.Points + o.Points,
		Valuation:      b.Valuation + o.Valuation,
		Assists:        b.Assists + o.Assists,
		Steals:         b.Steals + o.Steals,
		Turnovers:      b.Turnovers + o.Turnovers,
		Blocks:         b.Blocks + o.Blocks,
		OffRebounds:    b.OffRebounds + o.OffRebounds,
		DefRebounds:    b.DefRebounds + o.DefRebounds,
		Rebounds:       b.Rebounds + o.Rebounds,
		FoulsCommitted: b.FoulsCommitted + o.FoulsCommitted,
		FoulsReceived:  b.FoulsReceived + o.FoulsReceived,
		PlusMinus:      b.PlusMinus + o.PlusMinus,
	}
}

// Scale multiplies every field by f. Scale(1/n) turns totals into means.
func (b Box) Scale(f float64) Box {
	return Box{
		Minutes:        b.Minutes * f,
		Points:         b.Points * f,
		Valuation:      b.Valuation * f,
		Assists:        b.Assists * f,
		Steals:         b.Steals * f,
		Turnovers:      b.Turnovers * f,
		Blocks:         b.Blocks * f,
		OffRebounds:    b.OffRebounds * f,
		DefRebounds:    b.DefRebounds * f,
		Rebounds:       b.Rebounds * f,
		FoulsCommitted: b.FoulsCommitted * f,
		FoulsReceived:  b.FoulsReceived * f,
		PlusMinus:      b.PlusMinus * f,
	}
}

// Shooting holds made/attempted pairs for 2PT, 3PT and free throws.
type Shooting struct {
	TwoMade        int
	TwoAttempted   int
	ThreeMade      int
	ThreeAttempted int
	FreeMade       int
	FreeAttempted  int
}

func (s Shooting) Add(o Shooting) Shooting {
	return Shooting{
		TwoMade:        s.TwoMade + o.TwoMade,
		TwoAttempted:   s.TwoAttempted + o.TwoAttempted,
		ThreeMade:      s.ThreeMade + o.ThreeMade,
		ThreeAttempted: s.ThreeAttempted + o.ThreeAttempted,
		FreeMade:       s.FreeMade + o.FreeMade,
		FreeAttempted:  s.FreeAttempted + o.FreeAttempted,
	}
}

func (s Shooting) FieldGoalsMade() int {
	return s.TwoMade + s.ThreeMade
}

func (s Shooting) FieldGoalsAttempted() int {
	return s.TwoAttempted + s.ThreeAttempted
}

// MatchStat is one player's line in one match. (MatchID, PlayerID) is unique.
type MatchStat struct {
	PlayerID       string
	MatchID        string
	TeamID         string
	OpponentTeamID string
	Season         string
	StartYear      int
	Round          int
	Box
	Shooting
	DoubleDouble bool
}

// Key is the uniqueness key of a stat line.
type Key struct {
	MatchID  string
	PlayerID string
}

func (s MatchStat) Key() Key {
	return Key{MatchID: s.MatchID, PlayerID: s.PlayerID}
}

// IsDoubleDouble reports whether at least two of points, rebounds, assists,
// steals and blocks reached 10.
func IsDoubleDouble(b Box) bool {
	hits := 0
	for _, v := range []float64{b.Points, b.Rebounds, b.Assists, b.Steals, b.Blocks} {
		if v >= 10 {
			hits++
		}
	}
	return hits >= 2
}

// Advanced holds the derived efficiency metrics of a season line.
type Advanced struct {
	TrueShootingPct     float64
	EffectiveFGPct      float64
	AssistTurnoverRatio float64
	ValuationPerMinute  float64
	PossessionsEnded    float64
	OffensiveRating     float64
}

// SeasonSummary is one row per (player, team, start year).
type SeasonSummary struct {
	PlayerID      string
	PlayerName    string
	TeamID        string
	StartYear     int
	Games         int
	Totals        Box
	Averages      Box
	DoubleDoubles int
	Shooting      Shooting
	Advanced      Advanced
}
