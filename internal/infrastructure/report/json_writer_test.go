package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/hoops-ledger/internal/domain/ledger"
	"github.com/riskibarqy/hoops-ledger/internal/domain/match"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
)

func TestJSONWriter_WriteReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rep := ledger.Report{
		RunID:     "run1",
		StartedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Counters:  ledger.Counters{FilesSeen: 4, MatchesValidated: 1},
		Resolver:  ledger.ResolverStats{Unresolved: 2},
		Disagreements: []match.ScoreDisagreement{{
			MatchID: "m1", PlayerID: "p1", HomeScore: 80, AwayScore: 75, SeenHomeScore: 75, SeenAwayScore: 80,
		}},
	}

	if err := NewJSONWriter(dir, logging.NewNop()).WriteReport(context.Background(), rep); err != nil {
		t.Fatalf("WriteReport error: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var decoded map[string]any
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if decoded["run_id"] != "run1" {
		t.Fatalf("run_id got %v", decoded["run_id"])
	}
	counters, ok := decoded["counters"].(map[string]any)
	if !ok || counters["files_seen"] != float64(4) {
		t.Fatalf("unexpected counters %v", decoded["counters"])
	}
	sinks, ok := decoded["sinks"].([]any)
	if !ok || len(sinks) != 0 {
		t.Fatalf("sinks should encode as an empty list, got %v", decoded["sinks"])
	}
	list, ok := decoded["score_disagreements"].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("unexpected disagreements %v", decoded["score_disagreements"])
	}
}
