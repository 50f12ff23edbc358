// Command ledger rebuilds the match ledger from scraped player logs.
//
// Usage:
//
//	hoops-ledger run --raw datos/bruto/temporadas --out datos/procesados/ledger
//	hoops-ledger run --dry-run
//	hoops-ledger resolve "Movistar Estudiantes" --season 2023-2024
//	hoops-ledger migrate up
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	sonic "github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/hoops-ledger/internal/app"
	"github.com/riskibarqy/hoops-ledger/internal/config"
	"github.com/riskibarqy/hoops-ledger/internal/observability"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
	"github.com/riskibarqy/hoops-ledger/internal/usecase"
)

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "hoops-ledger",
		Short:         "Basketball box-score ledger builder",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd())
	root.AddCommand(resolveCmd())
	root.AddCommand(migrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type environment struct {
	cfg      config.Config
	logger   *logging.Logger
	shutdown func()
}

func setup(applyFlags func(*config.Config)) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if applyFlags != nil {
		applyFlags(&cfg)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)

	stopObservability, err := observability.Start(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &environment{
		cfg:    cfg,
		logger: logger,
		shutdown: func() {
			if err := stopObservability(context.Background()); err != nil {
				logger.Warn("stop observability", "error", err)
			}
			_ = logger.Sync()
		},
	}, nil
}

func runCmd() *cobra.Command {
	var (
		rawDir, masterDir, outDir, runID string
		workers, minPlayers              int
		dryRun                           bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconstruct matches, validate coverage and write season summaries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(func(cfg *config.Config) {
				flags := cmd.Flags()
				if flags.Changed("raw") {
					cfg.RawDir = rawDir
				}
				if flags.Changed("master") {
					cfg.MasterDir = masterDir
				}
				if flags.Changed("out") {
					cfg.OutputDir = outDir
				}
				if flags.Changed("workers") {
					cfg.Workers = workers
				}
				if flags.Changed("min-players") {
					cfg.MinPlayersPerMatch = minPlayers
				}
				if flags.Changed("dry-run") {
					cfg.DryRun = dryRun
				}
			})
			if err != nil {
				return err
			}
			defer env.shutdown()

			runner, err := app.NewRunner(env.cfg, env.logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := runner.Close(); err != nil {
					env.logger.Warn("close runner", "error", err)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := runner.Run(ctx, usecase.RunInput{
				RunID:              runID,
				Workers:            env.cfg.Workers,
				MinPlayersPerMatch: env.cfg.MinPlayersPerMatch,
				DryRun:             env.cfg.DryRun,
			})
			if err != nil {
				env.logger.Error("ledger run failed", "error", err)
				return err
			}

			c := result.Report.Counters
			fmt.Fprintf(cmd.OutOrStdout(),
				"run %s: %d matches, %d stat lines, %d player summaries, %d team summaries (%d ms)\n",
				result.Report.RunID, c.MatchesValidated, c.StatLinesValidated,
				c.PlayerSummaries, c.TeamSummaries, result.Report.DurationMs,
			)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&rawDir, "raw", "", "raw season tree (overrides LEDGER_RAW_DIR)")
	flags.StringVar(&masterDir, "master", "", "reference tables dir (overrides LEDGER_MASTER_DIR)")
	flags.StringVar(&outDir, "out", "", "output dir (overrides LEDGER_OUTPUT_DIR)")
	flags.IntVar(&workers, "workers", 0, "worker count (overrides LEDGER_WORKERS)")
	flags.IntVar(&minPlayers, "min-players", 0, "minimum stat lines per match (overrides LEDGER_MIN_PLAYERS_PER_MATCH)")
	flags.BoolVar(&dryRun, "dry-run", false, "compute tables without writing them")
	flags.StringVar(&runID, "run-id", "", "run identifier, generated when empty")
	return cmd
}

func resolveCmd() *cobra.Command {
	var season, exclude string
	cmd := &cobra.Command{
		Use:   "resolve <team name>",
		Short: "Show how a raw team label resolves for a season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Resolution only reads the reference tables.
			env, err := setup(func(cfg *config.Config) { cfg.DBEnabled = false })
			if err != nil {
				return err
			}
			defer env.shutdown()

			runner, err := app.NewRunner(env.cfg, env.logger, app.WithSinks())
			if err != nil {
				return err
			}

			res, err := runner.ResolveTeam(cmd.Context(), args[0], season, exclude)
			if err != nil {
				return err
			}
			out, err := sonic.ConfigStd.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "season label, for example 2023-2024")
	cmd.Flags().StringVar(&exclude, "exclude", "", "team id to leave out of the candidates")
	_ = cmd.MarkFlagRequired("season")
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the ledger database schema",
	}

	withMigrator := func(fn func(*app.Migrator, []string) error) func(*cobra.Command, []string) error {
		return func(_ *cobra.Command, args []string) error {
			env, err := setup(nil)
			if err != nil {
				return err
			}
			defer env.shutdown()

			m, err := app.NewMigrator(env.cfg, env.logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := m.Close(); err != nil {
					env.logger.Warn("close migrator", "error", err)
				}
			}()
			return fn(m, args)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(m *app.Migrator, _ []string) error {
			return m.Up()
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations, one by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: withMigrator(func(m *app.Migrator, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid down steps %q: %w", args[0], err)
				}
				steps = n
			}
			return m.Down(steps)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(m *app.Migrator, _ []string) error {
			v, err := m.Version()
			if err != nil {
				return err
			}
			if v.None {
				fmt.Println("version: none")
				fmt.Println("dirty: false")
				return nil
			}
			fmt.Printf("version: %d\n", v.Version)
			fmt.Printf("dirty: %t\n", v.Dirty)
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "force <version>",
		Short: "Set the schema version without running migrations",
		Args:  cobra.ExactArgs(1),
		RunE: withMigrator(func(m *app.Migrator, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return m.Force(version)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "goto <version>",
		Short: "Migrate up or down to a target version",
		Args:  cobra.ExactArgs(1),
		RunE: withMigrator(func(m *app.Migrator, args []string) error {
			target, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid target version %q: %w", args[0], err)
			}
			return m.Goto(uint(target))
		}),
	})
	return cmd
}
