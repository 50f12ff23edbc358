package app

import (
	"context"
	"os"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-ledger/internal/config"
	"github.com/riskibarqy/hoops-ledger/internal/domain/ledger"
	"github.com/riskibarqy/hoops-ledger/internal/infrastructure/csvio"
	"github.com/riskibarqy/hoops-ledger/internal/infrastructure/manifest"
	"github.com/riskibarqy/hoops-ledger/internal/infrastructure/report"
	"github.com/riskibarqy/hoops-ledger/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
	"github.com/riskibarqy/hoops-ledger/internal/usecase"
)

// Runner owns the wired pipeline and whatever connections it opened.
type Runner struct {
	service *usecase.LedgerService
	db      *sqlx.DB
	sinks   []string
}

type runnerOptions struct {
	sinks []ledger.Sink
}

// Option customizes NewRunner.
type Option func(*runnerOptions)

// WithSinks replaces the configured sinks. The CSV writer and the database
// sink are not created when this option is used.
func WithSinks(sinks ...ledger.Sink) Option {
	return func(o *runnerOptions) {
		o.sinks = append([]ledger.Sink{}, sinks...)
	}
}

func NewRunner(cfg config.Config, logger *logging.Logger, opts ...Option) (*Runner, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := runnerOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	rawFS := os.DirFS(cfg.RawDir)
	masterFS := os.DirFS(cfg.MasterDir)

	runner := &Runner{}
	sinks := options.sinks
	if sinks == nil {
		sinks = []ledger.Sink{csvio.NewTableWriter(cfg.OutputDir, logger)}
		if cfg.DBEnabled {
			db, err := openDB(cfg)
			if err != nil {
				return nil, err
			}
			runner.db = db
			sinks = append(sinks, postgres.NewLedgerSink(db, logger))
		}
	}
	for _, sink := range sinks {
		runner.sinks = append(runner.sinks, sink.Name())
	}

	runner.service = usecase.NewLedgerService(
		csvio.NewTeamReferenceReader(masterFS, logger),
		csvio.NewPlayerIdentityReader(masterFS, logger),
		manifest.NewTree(rawFS, logger),
		csvio.NewRowReader(rawFS),
		sinks,
		report.NewJSONWriter(cfg.OutputDir, logger),
		cfg.TeamOverrides,
		logger.Named("ledger"),
	)

	logger.Info("ledger runner ready",
		"raw_dir", cfg.RawDir,
		"master_dir", cfg.MasterDir,
		"output_dir", cfg.OutputDir,
		"sinks", runner.sinks,
	)
	return runner, nil
}

// Run executes one pipeline pass.
func (r *Runner) Run(ctx context.Context, input usecase.RunInput) (usecase.RunResult, error) {
	return r.service.Run(ctx, input)
}

// ResolveTeam runs a single resolver lookup.
func (r *Runner) ResolveTeam(ctx context.Context, rawName, season, excludeID string) (usecase.TeamResolution, error) {
	return r.service.ResolveTeam(ctx, rawName, season, excludeID)
}

// Sinks lists the names of the sinks a run writes to.
func (r *Runner) Sinks() []string {
	return append([]string(nil), r.sinks...)
}

func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	if err := r.db.Close(); err != nil {
		return crerr.Wrap(err, "close database")
	}
	return nil
}
