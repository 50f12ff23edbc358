package match

// SideBox is the rolled-up box score of one side of a validated match.
type SideBox struct {
	Coverage      float64
	Rebounds      int
	Assists       int
	Steals        int
	Turnovers     int
	Valuation     int
	ThreePointPct float64
}

// Match is the canonical record of one physical game.
type Match struct {
	ID         string
	Date       string
	Season     string
	StartYear  int
	Round      int
	HomeTeamID string
	AwayTeamID string
	HomeScore  int
	AwayScore  int
	ScoreKnown bool
	Home       SideBox
	Away       SideBox
}

// Side reports whether teamID played at home, away, or not at all.
func (m Match) Side(teamID string) (home bool, ok bool) {
	switch teamID {
	case m.HomeTeamID:
		return true, true
	case m.AwayTeamID:
		return false, true
	default:
		return false, false
	}
}

// Won reports whether teamID outscored its opponent.
func (m Match) Won(teamID string) bool {
	home, ok := m.Side(teamID)
	if !ok {
		return false
	}
	if home {
		return m.HomeScore > m.AwayScore
	}
	return m.AwayScore > m.HomeScore
}

// ScoreDisagreement records a later row whose score implies a different result than the stored header.
type ScoreDisagreement struct {
	MatchID       string `json:"match_id"`
	PlayerID      string `json:"player_id"`
	HomeScore     int    `json:"home_score"`
	AwayScore     int    `json:"away_score"`
	SeenHomeScore int    `json:"seen_home_score"`
	SeenAwayScore int    `json:"seen_away_score"`
}
