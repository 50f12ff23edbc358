package usecase

import (
	"context"
	"sort"

	"github.com/riskibarqy/hoops-ledger/internal/domain/match"
	"github.com/riskibarqy/hoops-ledger/internal/domain/player"
	"github.com/riskibarqy/hoops-ledger/internal/domain/playerstats"
	"github.com/riskibarqy/hoops-ledger/internal/domain/teamstats"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

// Aggregation is the season-level output, sorted by start year then ids.
type Aggregation struct {
	Players   []playerstats.SeasonSummary
	Teams     []teamstats.SeasonSummary
	TeamBoxes []teamstats.MatchBox
}

// SeasonAggregator folds validated rows into player and team season summaries.
type SeasonAggregator struct {
	players   *player.Directory
	teamNames func(teamID string) string
	workers   int
	logger    *logging.Logger
}

func NewSeasonAggregator(players *player.Directory, teamNames func(string) string, workers int, logger *logging.Logger) *SeasonAggregator {
	if logger == nil {
		logger = logging.Default()
	}
	if teamNames == nil {
		teamNames = func(string) string { return "" }
	}
	if workers < 1 {
		workers = defaultReconstructWorkers
	}
	return &SeasonAggregator{
		players:   players,
		teamNames: teamNames,
		workers:   workers,
		logger:    logger.Named("season_aggregator"),
	}
}

type playerSeasonKey struct {
	playerID  string
	teamID    string
	startYear int
}

type teamSeasonKey struct {
	teamID    string
	startYear int
}

type teamMatchKey struct {
	matchID string
	teamID  string
}

func (a *SeasonAggregator) Aggregate(ctx context.Context, v Validation) Aggregation {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonAggregator.Aggregate")
	defer span.End()

	out := Aggregation{
		Players:   a.aggregatePlayers(v.Stats),
		TeamBoxes: buildTeamBoxes(v.Matches, v.Stats),
	}
	out.Teams = a.aggregateTeams(out.TeamBoxes)

	a.logger.InfoContext(ctx, "aggregation finished",
		"player_summaries", len(out.Players),
		"team_summaries", len(out.Teams),
		"team_boxes", len(out.TeamBoxes),
	)
	return out
}

func (a *SeasonAggregator) aggregatePlayers(stats []playerstats.MatchStat) []playerstats.SeasonSummary {
	partitions := make(map[playerSeasonKey][]playerstats.MatchStat)
	for _, s := range stats {
		key := playerSeasonKey{playerID: s.PlayerID, teamID: s.TeamID, startYear: s.StartYear}
		partitions[key] = append(partitions[key], s)
	}

	keys := make([]playerSeasonKey, 0, len(partitions))
	for key := range partitions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].startYear != keys[j].startYear {
			return keys[i].startYear < keys[j].startYear
		}
		if keys[i].teamID != keys[j].teamID {
			return keys[i].teamID < keys[j].teamID
		}
		return keys[i].playerID < keys[j].playerID
	})

	mapper := iter.Mapper[playerSeasonKey, playerstats.SeasonSummary]{MaxGoroutines: a.workers}
	return mapper.Map(keys, func(key *playerSeasonKey) playerstats.SeasonSummary {
		summary := foldPlayerSeason(partitions[*key])
		summary.PlayerName = a.players.Name(key.playerID)
		return summary
	})
}

// foldPlayerSeason reduces one (player, team, start year) partition. rows is never empty.
func foldPlayerSeason(rows []playerstats.MatchStat) playerstats.SeasonSummary {
	first := rows[0]
	summary := playerstats.SeasonSummary{
		PlayerID:  first.PlayerID,
		TeamID:    first.TeamID,
		StartYear: first.StartYear,
		Games:     len(rows),
	}
	for _, row := range rows {
		summary.Totals = summary.Totals.Add(row.Box)
		summary.Shooting = summary.Shooting.Add(row.Shooting)
		if row.DoubleDouble {
			summary.DoubleDoubles++
		}
	}

	summary.Advanced = PlayerAdvanced(summary.Totals, summary.Shooting)
	summary.Averages = roundBox(summary.Totals.Scale(1 / float64(summary.Games)))
	summary.Totals = roundBox(summary.Totals)
	return summary
}

// buildTeamBoxes sums player lines per (match, team) and marks wins from the match header.
func buildTeamBoxes(matches []match.Match, stats []playerstats.MatchStat) []teamstats.MatchBox {
	headers := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		headers[m.ID] = m
	}

	index := make(map[teamMatchKey]int)
	var boxes []teamstats.MatchBox
	for _, s := range stats {
		header, ok := headers[s.MatchID]
		if !ok {
			continue
		}
		key := teamMatchKey{matchID: s.MatchID, teamID: s.TeamID}
		i, ok := index[key]
		if !ok {
			i = len(boxes)
			index[key] = i
			boxes = append(boxes, teamstats.MatchBox{
				MatchID:   s.MatchID,
				TeamID:    s.TeamID,
				StartYear: header.StartYear,
				Win:       header.Won(s.TeamID),
			})
		}
		boxes[i].Box = boxes[i].Box.Add(s.Box)
		boxes[i].Shooting = boxes[i].Shooting.Add(s.Shooting)
	}

	sort.SliceStable(boxes, func(i, j int) bool {
		if boxes[i].MatchID != boxes[j].MatchID {
			return boxes[i].MatchID < boxes[j].MatchID
		}
		return boxes[i].TeamID < boxes[j].TeamID
	})
	return boxes
}

func (a *SeasonAggregator) aggregateTeams(boxes []teamstats.MatchBox) []teamstats.SeasonSummary {
	partitions := make(map[teamSeasonKey][]teamstats.MatchBox)
	for _, b := range boxes {
		key := teamSeasonKey{teamID: b.TeamID, startYear: b.StartYear}
		partitions[key] = append(partitions[key], b)
	}

	keys := make([]teamSeasonKey, 0, len(partitions))
	for key := range partitions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].startYear != keys[j].startYear {
			return keys[i].startYear < keys[j].startYear
		}
		return keys[i].teamID < keys[j].teamID
	})

	mapper := iter.Mapper[teamSeasonKey, teamstats.SeasonSummary]{MaxGoroutines: a.workers}
	return mapper.Map(keys, func(key *teamSeasonKey) teamstats.SeasonSummary {
		summary := foldTeamSeason(partitions[*key])
		summary.TeamName = a.teamNames(key.teamID)
		return summary
	})
}

// foldTeamSeason reduces one (team, start year) partition. rows is never empty.
func foldTeamSeason(rows []teamstats.MatchBox) teamstats.SeasonSummary {
	first := rows[0]
	summary := teamstats.SeasonSummary{
		TeamID:    first.TeamID,
		StartYear: first.StartYear,
		Games:     len(rows),
	}
	for _, row := range rows {
		summary.Totals = summary.Totals.Add(row.Box)
		summary.Shooting = summary.Shooting.Add(row.Shooting)
		if row.Win {
			summary.Wins++
		}
	}

	games := float64(summary.Games)
	summary.Advanced = TeamAdvanced(summary.Totals, summary.Shooting, summary.Games, summary.Wins)
	summary.Averages = roundBox(summary.Totals.Scale(1 / games))
	summary.Totals = roundBox(summary.Totals)
	summary.ShootingAverages = teamstats.ShootingAverages{
		TwoMade:        round2(float64(summary.Shooting.TwoMade) / games),
		TwoAttempted:   round2(float64(summary.Shooting.TwoAttempted) / games),
		ThreeMade:      round2(float64(summary.Shooting.ThreeMade) / games),
		ThreeAttempted: round2(float64(summary.Shooting.ThreeAttempted) / games),
		FreeMade:       round2(float64(summary.Shooting.FreeMade) / games),
		FreeAttempted:  round2(float64(summary.Shooting.FreeAttempted) / games),
	}
	return summary
}

func roundBox(b playerstats.Box) playerstats.Box {
	return playerstats.Box{
		Minutes:        round2(b.Minutes),
		Points:         round2(b.Points),
		Valuation:      round2(b.Valuation),
		Assists:        round2(b.Assists),
		Steals:         round2(b.Steals),
		Turnovers:      round2(b.Turnovers),
		Blocks:         round2(b.Blocks),
		OffRebounds:    round2(b.OffRebounds),
		DefRebounds:    round2(b.DefRebounds),
		Rebounds:       round2(b.Rebounds),
		FoulsCommitted: round2(b.FoulsCommitted),
		FoulsReceived:  round2(b.FoulsReceived),
		PlusMinus:      round2(b.PlusMinus),
	}
}
