package rawdata

import "context"

// Manifest lists every raw log file of a run in a stable order.
type Manifest interface {
	Files(ctx context.Context) ([]File, error)
}

// Reader loads the rows of one file in stored order (newest first).
type Reader interface {
	ReadRows(ctx context.Context, file File) ([]Row, error)
}
