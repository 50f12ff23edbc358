package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/hoops-ledger/internal/domain/ledger"
	"github.com/riskibarqy/hoops-ledger/internal/domain/match"
	"github.com/riskibarqy/hoops-ledger/internal/domain/player"
	"github.com/riskibarqy/hoops-ledger/internal/domain/playerstats"
	"github.com/riskibarqy/hoops-ledger/internal/domain/rawdata"
	"github.com/riskibarqy/hoops-ledger/internal/domain/team"
	"github.com/riskibarqy/hoops-ledger/internal/platform/fieldparse"
	"github.com/riskibarqy/hoops-ledger/internal/platform/id"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
	"github.com/riskibarqy/hoops-ledger/internal/platform/textnorm"
)

const defaultReconstructWorkers = 4

// Reconstruction is the deduplicated output of one pass over the raw logs.
// Matches holds every header seen, stats every distinct (match, player) line,
// both in first-seen order.
type Reconstruction struct {
	Matches       []match.Match
	Stats         []playerstats.MatchStat
	Disagreements []match.ScoreDisagreement
	Counters      ledger.Counters
}

// MatchReconstructor folds per-player logs into canonical matches and stat lines.
type MatchReconstructor struct {
	resolver *TeamResolver
	players  *player.Directory
	manifest rawdata.Manifest
	reader   rawdata.Reader
	workers  int
	logger   *logging.Logger
}

func NewMatchReconstructor(
	resolver *TeamResolver,
	players *player.Directory,
	manifest rawdata.Manifest,
	reader rawdata.Reader,
	workers int,
	logger *logging.Logger,
) *MatchReconstructor {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = defaultReconstructWorkers
	}
	return &MatchReconstructor{
		resolver: resolver,
		players:  players,
		manifest: manifest,
		reader:   reader,
		workers:  workers,
		logger:   logger.Named("match_reconstructor"),
	}
}

// candidate is one accepted row before merging.
type candidate struct {
	header match.Match
	stat   playerstats.MatchStat
}

type filePartial struct {
	skippedTeam bool
	skippedRead bool
	rowsSeen    int
	badDate     int
	badOpponent int
	rows        []candidate
}

// Reconstruct parses every manifest file in parallel and merges the partial
// results in manifest order, so the output equals a sequential run.
func (r *MatchReconstructor) Reconstruct(ctx context.Context) (Reconstruction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchReconstructor.Reconstruct")
	defer span.End()

	if r.resolver == nil || r.manifest == nil || r.reader == nil {
		return Reconstruction{}, fmt.Errorf("%w: match reconstructor is not fully configured", ErrDependencyUnavailable)
	}

	files, err := r.manifest.Files(ctx)
	if err != nil {
		return Reconstruction{}, fmt.Errorf("list raw files: %w", err)
	}

	partials := make([]filePartial, len(files))
	if len(files) > 0 {
		if err := r.parseAll(ctx, files, partials); err != nil {
			return Reconstruction{}, err
		}
	}
	if err := ctx.Err(); err != nil {
		return Reconstruction{}, err
	}

	out := mergePartials(partials)
	out.Counters.FilesSeen = len(files)
	r.logger.InfoContext(ctx, "reconstruction finished",
		"files", len(files),
		"matches", len(out.Matches),
		"stat_lines", len(out.Stats),
		"files_skipped_team", out.Counters.FilesSkippedTeam,
		"files_skipped_read", out.Counters.FilesSkippedRead,
		"score_disagreements", out.Counters.ScoreDisagreements,
	)
	return out, nil
}

func (r *MatchReconstructor) parseAll(ctx context.Context, files []rawdata.File, partials []filePartial) error {
	pool, err := ants.NewPool(min(r.workers, len(files)))
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := range files {
		i := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if ctx.Err() != nil {
				return
			}
			partials[i] = r.parseFile(ctx, files[i])
		}); err != nil {
			workers.Done()
			workers.Wait()
			return fmt.Errorf("submit file to worker pool: %w", err)
		}
	}
	workers.Wait()
	return nil
}

func (r *MatchReconstructor) parseFile(ctx context.Context, file rawdata.File) filePartial {
	logger := r.logger.With("season", file.Season, "team_folder", file.TeamLabel, "file", file.Path)

	ownID := r.resolver.Resolve(textnorm.Folder(file.TeamLabel), file.Season, "")
	if ownID == team.UnknownID {
		logger.WarnContext(ctx, "skip file: team folder not resolved")
		return filePartial{skippedTeam: true}
	}

	rows, err := r.reader.ReadRows(ctx, file)
	if err != nil {
		logger.WarnContext(ctx, "skip file: read failed", "error", err)
		return filePartial{skippedRead: true}
	}

	startYear, _ := fieldparse.SeasonStartYear(file.Season)
	playerID := r.players.ResolveKey(file.PlayerKey)
	slices.Reverse(rows)

	out := filePartial{rowsSeen: len(rows), rows: make([]candidate, 0, len(rows))}
	for idx, row := range rows {
		round := idx + 1
		isoDate, ok := fieldparse.Date(row.Date)
		if !ok {
			out.badDate++
			logger.DebugContext(ctx, "skip row: unparsable date", "round", round, "date", row.Date)
			continue
		}

		away := strings.Contains(row.Opponent, "@")
		opponentName := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(row.Opponent, "vs ", ""), "@ ", ""))
		opponentID := r.resolver.Resolve(opponentName, file.Season, ownID)
		if opponentID == team.UnknownID {
			out.badOpponent++
			logger.DebugContext(ctx, "skip row: opponent not resolved", "round", round, "opponent", row.Opponent)
			continue
		}

		homeID, awayID := ownID, opponentID
		if away {
			homeID, awayID = opponentID, ownID
		}

		header := match.Match{
			ID:         id.MatchID(isoDate, team.Slug(homeID), team.Slug(awayID)),
			Date:       isoDate,
			Season:     file.Season,
			StartYear:  startYear,
			Round:      round,
			HomeTeamID: homeID,
			AwayTeamID: awayID,
		}
		if score, ok := fieldparse.ParseScore(row.Score); ok {
			header.ScoreKnown = true
			if away {
				header.HomeScore, header.AwayScore = score.Opponent, score.Own
			} else {
				header.HomeScore, header.AwayScore = score.Own, score.Opponent
			}
		}

		out.rows = append(out.rows, candidate{
			header: header,
			stat:   buildMatchStat(row, header, playerID, ownID, opponentID),
		})
	}
	return out
}

func buildMatchStat(row rawdata.Row, header match.Match, playerID, teamID, opponentID string) playerstats.MatchStat {
	box := playerstats.Box{
		Minutes:        fieldparse.Minutes(row.Minutes),
		Points:         fieldparse.Decimal(row.Points),
		Valuation:      fieldparse.Decimal(row.Valuation),
		Assists:        fieldparse.Decimal(row.Assists),
		Steals:         fieldparse.Decimal(row.Steals),
		Turnovers:      fieldparse.Decimal(row.Turnovers),
		Blocks:         fieldparse.Decimal(row.Blocks),
		OffRebounds:    fieldparse.Decimal(row.OffRebounds),
		DefRebounds:    fieldparse.Decimal(row.DefRebounds),
		Rebounds:       fieldparse.Decimal(row.Rebounds),
		FoulsCommitted: fieldparse.Decimal(row.FoulsCommitted),
		FoulsReceived:  fieldparse.Decimal(row.FoulsReceived),
		PlusMinus:      fieldparse.Decimal(row.PlusMinus),
	}

	var shooting playerstats.Shooting
	shooting.TwoMade, shooting.TwoAttempted = fieldparse.MadeAttempted(row.TwoPoint)
	shooting.ThreeMade, shooting.ThreeAttempted = fieldparse.MadeAttempted(row.ThreePoint)
	shooting.FreeMade, shooting.FreeAttempted = fieldparse.MadeAttempted(row.FreeThrow)

	return playerstats.MatchStat{
		PlayerID:       playerID,
		MatchID:        header.ID,
		TeamID:         teamID,
		OpponentTeamID: opponentID,
		Season:         header.Season,
		StartYear:      header.StartYear,
		Round:          header.Round,
		Box:            box,
		Shooting:       shooting,
		DoubleDouble:   playerstats.IsDoubleDouble(box),
	}
}

// mergePartials applies first-writer-wins to headers and skip-if-present to stat lines.
// A header without a readable score is replaced by the first later row that has one.
// The header round is the lowest round any perspective reported, so it does not
// depend on file order.
func mergePartials(partials []filePartial) Reconstruction {
	var out Reconstruction
	headerIdx := make(map[string]int)
	seenStats := make(map[playerstats.Key]struct{})

	for _, p := range partials {
		switch {
		case p.skippedTeam:
			out.Counters.FilesSkippedTeam++
			continue
		case p.skippedRead:
			out.Counters.FilesSkippedRead++
			continue
		}
		out.Counters.RowsSeen += p.rowsSeen
		out.Counters.RowsSkippedDate += p.badDate
		out.Counters.RowsSkippedOpponent += p.badOpponent

		for _, c := range p.rows {
			i, ok := headerIdx[c.header.ID]
			if !ok {
				headerIdx[c.header.ID] = len(out.Matches)
				out.Matches = append(out.Matches, c.header)
			} else if existing := out.Matches[i]; !existing.ScoreKnown && c.header.ScoreKnown {
				out.Matches[i] = c.header
				out.Matches[i].Round = min(existing.Round, c.header.Round)
			} else if existing.ScoreKnown && c.header.ScoreKnown &&
				(existing.HomeScore != c.header.HomeScore || existing.AwayScore != c.header.AwayScore) {
				out.Disagreements = append(out.Disagreements, match.ScoreDisagreement{
					MatchID:       existing.ID,
					PlayerID:      c.stat.PlayerID,
					HomeScore:     existing.HomeScore,
					AwayScore:     existing.AwayScore,
					SeenHomeScore: c.header.HomeScore,
					SeenAwayScore: c.header.AwayScore,
				})
			}
			if ok && c.header.Round < out.Matches[i].Round {
				out.Matches[i].Round = c.header.Round
			}

			key := c.stat.Key()
			if _, ok := seenStats[key]; ok {
				out.Counters.DuplicateStatLines++
				continue
			}
			seenStats[key] = struct{}{}
			out.Stats = append(out.Stats, c.stat)
		}
	}

	out.Counters.MatchesReconstructed = len(out.Matches)
	out.Counters.ScoreDisagreements = len(out.Disagreements)
	for _, m := range out.Matches {
		if !m.ScoreKnown {
			out.Counters.MatchesWithoutScore++
		}
	}
	return out
}
