package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-ledger/internal/domain/ledger"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
	qb "github.com/riskibarqy/hoops-ledger/internal/platform/querybuilder"
)

// LedgerSink replaces the seasons present in a run with the run's tables, in one transaction.
type LedgerSink struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewLedgerSink(db *sqlx.DB, logger *logging.Logger) *LedgerSink {
	if logger == nil {
		logger = logging.Default()
	}
	return &LedgerSink{db: db, logger: logger.Named("postgres")}
}

func (s *LedgerSink) Name() string {
	return "postgres"
}

type tableWrite struct {
	table  string
	models []any
	suffix string
}

func (s *LedgerSink) Write(ctx context.Context, tables ledger.Tables) error {
	years := startYears(tables)
	if len(years) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx write ledger tables: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	writes := ledgerWrites(tables)
	for i := len(writes) - 1; i >= 0; i-- {
		query, args, err := qb.DeleteFrom(writes[i].table).Where(qb.In("start_year", years)).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s query: %w", writes[i].table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s for seasons %v: %w", writes[i].table, years, err)
		}
	}

	for _, w := range writes {
		for _, batch := range batches(w.models, insertBatchSize) {
			query, args, err := qb.InsertModels(w.table, batch, w.suffix)
			if err != nil {
				return fmt.Errorf("build insert %s query: %w", w.table, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert %s: %w", w.table, err)
			}
		}
	}

	if err := verifyMatchCounts(ctx, tx, tables, years); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write ledger tables tx: %w", err)
	}

	s.logger.InfoContext(ctx, "ledger tables written",
		"seasons", len(years),
		"matches", len(tables.Matches),
		"stat_lines", len(tables.MatchStats),
		"player_summaries", len(tables.PlayerSummaries),
		"team_summaries", len(tables.TeamSummaries),
	)
	return nil
}

// ledgerWrites is ordered parents first; deletes run in reverse.
func ledgerWrites(tables ledger.Tables) []tableWrite {
	matches := make([]any, 0, len(tables.Matches))
	for _, m := range tables.Matches {
		matches = append(matches, matchModel(m))
	}
	stats := make([]any, 0, len(tables.MatchStats))
	for _, st := range tables.MatchStats {
		stats = append(stats, matchStatModel(st))
	}
	players := make([]any, 0, len(tables.PlayerSummaries))
	for _, p := range tables.PlayerSummaries {
		players = append(players, playerSummaryModel(p))
	}
	teams := make([]any, 0, len(tables.TeamSummaries))
	for _, t := range tables.TeamSummaries {
		teams = append(teams, teamSummaryModel(t))
	}

	return []tableWrite{
		{table: "matches", models: matches, suffix: `ON CONFLICT (match_id) DO UPDATE SET
    season = EXCLUDED.season,
    start_year = EXCLUDED.start_year,
    updated_at = NOW()`},
		{table: "player_match_stats", models: stats, suffix: `ON CONFLICT (match_id, player_id) DO NOTHING`},
		{table: "player_season_summaries", models: players, suffix: `ON CONFLICT (player_id, team_id, start_year) DO NOTHING`},
		{table: "team_season_summaries", models: teams, suffix: `ON CONFLICT (team_id, start_year) DO NOTHING`},
	}
}

type seasonCountRow struct {
	StartYear int `db:"start_year"`
	Total     int `db:"total"`
}

func verifyMatchCounts(ctx context.Context, tx *sqlx.Tx, tables ledger.Tables, years []any) error {
	query, args, err := qb.Select("start_year", "COUNT(1) AS total").
		From("matches").
		Where(qb.In("start_year", years)).
		GroupBy("start_year").
		OrderBy("start_year").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build count matches query: %w", err)
	}

	var rows []seasonCountRow
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return fmt.Errorf("count matches: %w", err)
	}

	want := make(map[int]int)
	for _, m := range tables.Matches {
		want[m.StartYear]++
	}
	for _, row := range rows {
		if want[row.StartYear] != row.Total {
			return fmt.Errorf("season %d: stored %d matches, expected %d", row.StartYear, row.Total, want[row.StartYear])
		}
		delete(want, row.StartYear)
	}
	for year, n := range want {
		if n > 0 {
			return fmt.Errorf("season %d: stored 0 matches, expected %d", year, n)
		}
	}
	return nil
}
