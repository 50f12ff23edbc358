package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/hoops-ledger/internal/domain/ledger"
	"github.com/riskibarqy/hoops-ledger/internal/domain/player"
	"github.com/riskibarqy/hoops-ledger/internal/domain/rawdata"
	"github.com/riskibarqy/hoops-ledger/internal/domain/team"
	"github.com/riskibarqy/hoops-ledger/internal/platform/id"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type RunInput struct {
	RunID              string `validate:"omitempty,max=64,alphanum"`
	Workers            int    `validate:"gte=0,lte=256"`
	MinPlayersPerMatch int    `validate:"gte=0,lte=50"`
	// DryRun computes every table but calls no sink.
	DryRun bool
}

// RunResult is what a finished run hands back to the caller.
type RunResult struct {
	Report ledger.Report
	Tables ledger.Tables
}

// TeamResolution explains one resolver decision, for debugging labels.
type TeamResolution struct {
	TeamID   string  `json:"team_id"`
	TeamName string  `json:"team_name"`
	Score    float64 `json:"best_score"`
	Accepted bool    `json:"accepted"`
}

// LedgerService runs the full pipeline: load references, reconstruct, validate,
// aggregate and hand the tables to every sink.
type LedgerService struct {
	teams     team.Repository
	players   player.Repository
	manifest  rawdata.Manifest
	reader    rawdata.Reader
	sinks     []ledger.Sink
	reporter  ledger.ReportWriter
	overrides map[string]string
	ids       id.Generator
	validate  *validator.Validate
	logger    *logging.Logger
	now       func() time.Time
}

func NewLedgerService(
	teams team.Repository,
	players player.Repository,
	manifest rawdata.Manifest,
	reader rawdata.Reader,
	sinks []ledger.Sink,
	reporter ledger.ReportWriter,
	overrides map[string]string,
	logger *logging.Logger,
) *LedgerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LedgerService{
		teams:     teams,
		players:   players,
		manifest:  manifest,
		reader:    reader,
		sinks:     sinks,
		reporter:  reporter,
		overrides: overrides,
		ids:       id.NewRandomGenerator(),
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *LedgerService) Run(ctx context.Context, input RunInput) (result RunResult, err error) {
	ctx, span := startRunSpan(ctx, "usecase.LedgerService.Run",
		attribute.Int("ledger.workers", input.Workers),
		attribute.Bool("ledger.dry_run", input.DryRun),
	)
	defer func() {
		recordSpanError(span, err)
		span.End()
	}()

	if err := s.validate.StructCtx(ctx, input); err != nil {
		return RunResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if s.teams == nil || s.players == nil || s.manifest == nil || s.reader == nil {
		return RunResult{}, fmt.Errorf("%w: ledger service is not fully configured", ErrDependencyUnavailable)
	}

	startedAt := s.now()
	runID := input.RunID
	if runID == "" {
		generated, err := s.ids.NewID()
		if err != nil {
			return RunResult{}, fmt.Errorf("generate run id: %w", err)
		}
		runID = generated
	}
	logger := s.logger.With("run_id", runID)
	span.SetAttributes(attribute.String("ledger.run_id", runID))

	resolver, directory, err := s.loadReferences(ctx)
	if err != nil {
		return RunResult{}, err
	}
	logger.InfoContext(ctx, "reference tables loaded", "seasons", resolver.Seasons(), "players", directory.Len())

	reconstructor := NewMatchReconstructor(resolver, directory, s.manifest, s.reader, input.Workers, logger)
	rec, err := reconstructor.Reconstruct(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("reconstruct matches: %w", err)
	}

	validation := NewCoverageValidator(input.MinPlayersPerMatch, logger).Validate(ctx, rec)
	aggregation := NewSeasonAggregator(directory, resolver.TeamName, input.Workers, logger).Aggregate(ctx, validation)

	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}

	tables := ledger.Tables{
		Matches:         validation.Matches,
		MatchStats:      validation.Stats,
		PlayerSummaries: aggregation.Players,
		TeamSummaries:   aggregation.Teams,
	}

	counters := rec.Counters
	counters.MatchesBelowThreshold = validation.Counters.MatchesBelowThreshold
	counters.StatLinesDropped = validation.Counters.StatLinesDropped
	counters.MatchesValidated = validation.Counters.MatchesValidated
	counters.StatLinesValidated = validation.Counters.StatLinesValidated
	counters.PlayerSummaries = len(aggregation.Players)
	counters.TeamSummaries = len(aggregation.Teams)

	report := ledger.Report{
		RunID:         runID,
		StartedAt:     startedAt,
		DryRun:        input.DryRun,
		Sinks:         make([]string, 0, len(s.sinks)),
		Counters:      counters,
		Resolver:      resolver.Stats(),
		Disagreements: rec.Disagreements,
	}

	if !input.DryRun {
		for _, sink := range s.sinks {
			if sink == nil {
				continue
			}
			if err := sink.Write(ctx, tables); err != nil {
				return RunResult{}, fmt.Errorf("%w: %s: %w", ErrSinkFailed, sink.Name(), err)
			}
			report.Sinks = append(report.Sinks, sink.Name())
			logger.InfoContext(ctx, "tables written", "sink", sink.Name())
		}
	}

	report.FinishedAt = s.now()
	report.DurationMs = report.FinishedAt.Sub(startedAt).Milliseconds()
	if s.reporter != nil && !input.DryRun {
		if err := s.reporter.WriteReport(ctx, report); err != nil {
			return RunResult{}, fmt.Errorf("%w: run report: %w", ErrSinkFailed, err)
		}
	}

	logger.InfoContext(ctx, "run finished",
		"matches", counters.MatchesValidated,
		"stat_lines", counters.StatLinesValidated,
		"player_summaries", counters.PlayerSummaries,
		"team_summaries", counters.TeamSummaries,
		"duration_ms", report.DurationMs,
		"dry_run", input.DryRun,
	)
	return RunResult{Report: report, Tables: tables}, nil
}

// ResolveTeam runs a single resolver lookup against the reference tables.
func (s *LedgerService) ResolveTeam(ctx context.Context, rawName, season, excludeID string) (TeamResolution, error) {
	ctx, span := startRunSpan(ctx, "usecase.LedgerService.ResolveTeam", attribute.String("ledger.season", season))
	defer span.End()

	if season == "" {
		return TeamResolution{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if s.teams == nil {
		return TeamResolution{}, fmt.Errorf("%w: team reference repository is not configured", ErrDependencyUnavailable)
	}
	refs, err := s.teams.ListReferences(ctx)
	if err != nil {
		return TeamResolution{}, fmt.Errorf("%w: team references: %w", ErrMissingReference, err)
	}

	resolver := NewTeamResolver(refs, WithOverrides(s.overrides))
	resolved := resolver.Resolve(rawName, season, excludeID)
	_, score := resolver.Score(rawName, season, excludeID)
	return TeamResolution{
		TeamID:   resolved,
		TeamName: resolver.TeamName(resolved),
		Score:    round2(score),
		Accepted: resolved != team.UnknownID,
	}, nil
}

func (s *LedgerService) loadReferences(ctx context.Context) (*TeamResolver, *player.Directory, error) {
	refs, err := s.teams.ListReferences(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: team references: %w", ErrMissingReference, err)
	}
	if len(refs) == 0 {
		return nil, nil, fmt.Errorf("%w: team reference table is empty", ErrMissingReference)
	}
	identities, err := s.players.ListIdentities(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: player identities: %w", ErrMissingReference, err)
	}

	return NewTeamResolver(refs, WithOverrides(s.overrides)), player.NewDirectory(identities), nil
}
