// Package report persists the run report as JSON.
package report

import (
	"context"
	"os"
	"path/filepath"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hoops-ledger/internal/domain/ledger"
	"github.com/riskibarqy/hoops-ledger/internal/domain/match"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
)

const FileName = "run_report.json"

type JSONWriter struct {
	dir    string
	logger *logging.Logger
}

func NewJSONWriter(dir string, logger *logging.Logger) *JSONWriter {
	if logger == nil {
		logger = logging.Default()
	}
	return &JSONWriter{dir: dir, logger: logger.Named("report")}
}

func (w *JSONWriter) WriteReport(ctx context.Context, rep ledger.Report) error {
	if rep.Sinks == nil {
		rep.Sinks = []string{}
	}
	if rep.Disagreements == nil {
		rep.Disagreements = []match.ScoreDisagreement{}
	}

	payload, err := sonic.ConfigStd.MarshalIndent(rep, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode run report")
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create report dir %s", w.dir)
	}

	path := filepath.Join(w.dir, FileName)
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return crerr.Wrapf(err, "write %s", path)
	}

	w.logger.InfoContext(ctx, "run report written",
		"file", path,
		"matches", rep.Counters.MatchesValidated,
		"stat_lines", rep.Counters.StatLinesValidated,
		"disagreements", len(rep.Disagreements),
	)
	return nil
}
