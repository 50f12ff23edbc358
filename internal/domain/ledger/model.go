// Package ledger groups the output tables of one pipeline run.
package ledger

import (
	"time"

	"github.com/riskibarqy/hoops-ledger/internal/domain/match"
	"github.com/riskibarqy/hoops-ledger/internal/domain/playerstats"
	"github.com/riskibarqy/hoops-ledger/internal/domain/teamstats"
)

// Tables are the four validated output tables, each in deterministic order.
type Tables struct {
	Matches         []match.Match
	MatchStats      []playerstats.MatchStat
	PlayerSummaries []playerstats.SeasonSummary
	TeamSummaries   []teamstats.SeasonSummary
}

// Counters summarize what a run kept and what it discarded.
type Counters struct {
	FilesSeen             int `json:"files_seen"`
	FilesSkippedTeam      int `json:"files_skipped_unknown_team"`
	FilesSkippedRead      int `json:"files_skipped_unreadable"`
	RowsSeen              int `json:"rows_seen"`
	RowsSkippedDate       int `json:"rows_skipped_bad_date"`
	RowsSkippedOpponent   int `json:"rows_skipped_unknown_opponent"`
	DuplicateStatLines    int `json:"duplicate_stat_lines"`
	ScoreDisagreements    int `json:"score_disagreements"`
	MatchesReconstructed  int `json:"matches_reconstructed"`
	MatchesWithoutScore   int `json:"matches_without_score"`
	MatchesBelowThreshold int `json:"matches_below_threshold"`
	StatLinesDropped      int `json:"stat_lines_dropped"`
	MatchesValidated      int `json:"matches_validated"`
	StatLinesValidated    int `json:"stat_lines_validated"`
	PlayerSummaries       int `json:"player_summaries"`
	TeamSummaries         int `json:"team_summaries"`
}

// ResolverStats counts every Resolve call by outcome, memoized repeats included.
type ResolverStats struct {
	Overrides  int64 `json:"overrides"`
	Matched    int64 `json:"matched"`
	Unresolved int64 `json:"unresolved"`
}

// Report describes one finished run.
type Report struct {
	RunID         string                    `json:"run_id"`
	StartedAt     time.Time                 `json:"started_at"`
	FinishedAt    time.Time                 `json:"finished_at"`
	DurationMs    int64                     `json:"duration_ms"`
	DryRun        bool                      `json:"dry_run"`
	Sinks         []string                  `json:"sinks"`
	Counters      Counters                  `json:"counters"`
	Resolver      ResolverStats             `json:"resolver"`
	Disagreements []match.ScoreDisagreement `json:"score_disagreements"`
}
