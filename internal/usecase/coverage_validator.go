package usecase

import (
	"context"
	"sort"

	"github.com/riskibarqy/hoops-ledger/internal/domain/ledger"
	"github.com/riskibarqy/hoops-ledger/internal/domain/match"
	"github.com/riskibarqy/hoops-ledger/internal/domain/playerstats"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
)

// DefaultMinPlayersPerMatch is the number of distinct stat lines a match needs to be kept.
const DefaultMinPlayersPerMatch = 5

// Validation holds the matches and stat lines that survived the coverage filter,
// sorted by match id (and team, player for stat lines).
type Validation struct {
	Matches  []match.Match
	Stats    []playerstats.MatchStat
	Counters ledger.Counters
}

// CoverageValidator drops under-corroborated matches and rolls up per-side boxes.
type CoverageValidator struct {
	minPlayers int
	logger     *logging.Logger
}

func NewCoverageValidator(minPlayers int, logger *logging.Logger) *CoverageValidator {
	if logger == nil {
		logger = logging.Default()
	}
	if minPlayers < 1 {
		minPlayers = DefaultMinPlayersPerMatch
	}
	return &CoverageValidator{
		minPlayers: minPlayers,
		logger:     logger.Named("coverage_validator"),
	}
}

func (v *CoverageValidator) Validate(ctx context.Context, rec Reconstruction) Validation {
	ctx, span := startUsecaseSpan(ctx, "usecase.CoverageValidator.Validate")
	defer span.End()

	byMatch := make(map[string][]playerstats.MatchStat, len(rec.Matches))
	for _, stat := range rec.Stats {
		byMatch[stat.MatchID] = append(byMatch[stat.MatchID], stat)
	}

	var out Validation
	for _, m := range rec.Matches {
		lines := byMatch[m.ID]
		if len(lines) < v.minPlayers {
			out.Counters.MatchesBelowThreshold++
			out.Counters.StatLinesDropped += len(lines)
			v.logger.DebugContext(ctx, "drop match below player threshold", "match_id", m.ID, "stat_lines", len(lines))
			continue
		}
		if !m.ScoreKnown {
			out.Counters.StatLinesDropped += len(lines)
			v.logger.DebugContext(ctx, "drop match without a readable score", "match_id", m.ID)
			continue
		}

		m.Home = sideBox(lines, m.HomeTeamID, m.HomeScore)
		m.Away = sideBox(lines, m.AwayTeamID, m.AwayScore)
		out.Matches = append(out.Matches, m)
		out.Stats = append(out.Stats, lines...)
	}

	sort.SliceStable(out.Matches, func(i, j int) bool {
		return out.Matches[i].ID < out.Matches[j].ID
	})
	sort.SliceStable(out.Stats, func(i, j int) bool {
		a, b := out.Stats[i], out.Stats[j]
		if a.MatchID != b.MatchID {
			return a.MatchID < b.MatchID
		}
		if a.TeamID != b.TeamID {
			return a.TeamID < b.TeamID
		}
		return a.PlayerID < b.PlayerID
	})

	out.Counters.MatchesValidated = len(out.Matches)
	out.Counters.StatLinesValidated = len(out.Stats)
	v.logger.InfoContext(ctx, "validation finished",
		"matches_validated", out.Counters.MatchesValidated,
		"matches_below_threshold", out.Counters.MatchesBelowThreshold,
		"stat_lines_dropped", out.Counters.StatLinesDropped,
	)
	return out
}

// sideBox sums the lines of one team. Coverage is never negative and is 0 when
// the official score is 0.
func sideBox(lines []playerstats.MatchStat, teamID string, officialScore int) match.SideBox {
	var box playerstats.Box
	var shooting playerstats.Shooting
	for _, line := range lines {
		if line.TeamID != teamID {
			continue
		}
		box = box.Add(line.Box)
		shooting = shooting.Add(line.Shooting)
	}

	coverage := 0.0
	if officialScore > 0 {
		coverage = round2(max(box.Points, 0) / float64(officialScore))
	}
	return match.SideBox{
		Coverage:      coverage,
		Rebounds:      int(box.Rebounds),
		Assists:       int(box.Assists),
		Steals:        int(box.Steals),
		Turnovers:     int(box.Turnovers),
		Valuation:     int(box.Valuation),
		ThreePointPct: percentage(float64(shooting.ThreeMade), float64(shooting.ThreeAttempted)),
	}
}
