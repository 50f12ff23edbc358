package csvio

import (
	"context"
	"io/fs"

	"github.com/riskibarqy/hoops-ledger/internal/domain/rawdata"
)

// RowReader reads scraped player logs from the raw tree.
type RowReader struct {
	fsys fs.FS
}

func NewRowReader(fsys fs.FS) *RowReader {
	return &RowReader{fsys: fsys}
}

func (r *RowReader) ReadRows(ctx context.Context, file rawdata.File) ([]rawdata.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := readTable(r.fsys, file.Path)
	if err != nil {
		return nil, err
	}
	if err := t.require(file.Path, "FECHA", "PARTIDO"); err != nil {
		return nil, err
	}

	rows := make([]rawdata.Row, 0, len(t.records))
	for _, record := range t.records {
		rows = append(rows, rawdata.Row{
			Date:           t.get(record, "FECHA"),
			Opponent:       t.get(record, "PARTIDO"),
			Score:          t.get(record, "PUNTUACIÓN", "PUNTUACION"),
			Minutes:        t.get(record, "MIN"),
			Points:         t.get(record, "PTS"),
			Valuation:      t.get(record, "VAL"),
			TwoPoint:       t.get(record, "2M-2A"),
			ThreePoint:     t.get(record, "3M-3A"),
			FreeThrow:      t.get(record, "1M-1A"),
			OffRebounds:    t.get(record, "RO"),
			DefRebounds:    t.get(record, "RD"),
			Rebounds:       t.get(record, "REB.1", "REB"),
			Assists:        t.get(record, "AST.1", "AST"),
			Steals:         t.get(record, "BR"),
			Blocks:         t.get(record, "TAP"),
			Turnovers:      t.get(record, "BP"),
			PlusMinus:      t.get(record, "+/-"),
			FoulsCommitted: t.get(record, "FC", "F"),
			FoulsReceived:  t.get(record, "FR"),
		})
	}
	return rows, nil
}
