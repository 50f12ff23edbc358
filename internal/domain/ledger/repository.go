package ledger

import "context"

// Sink receives the output tables of a finished run.
type Sink interface {
	Name() string
	Write(ctx context.Context, tables Tables) error
}

// ReportWriter persists the run report.
type ReportWriter interface {
	WriteReport(ctx context.Context, report Report) error
}
