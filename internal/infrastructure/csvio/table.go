// Package csvio reads the master and raw CSV tables and writes the output tables.
package csvio

import (
	"bytes"
	"encoding/csv"
	"io"
	"io/fs"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

const utf8BOM = "\ufeff"

// table is a decoded CSV file addressed by header name.
type table struct {
	width   int
	columns map[string]int
	records [][]string
}

// readTable decodes one CSV file. Duplicate header names are suffixed ".1", ".2", ...
// so that the second "REB" column is addressable as "REB.1".
func readTable(fsys fs.FS, name string) (*table, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, crerr.Wrapf(err, "read %s", name)
	}
	return decodeTable(bytes.NewReader(raw), name)
}

func decodeTable(r io.Reader, name string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, crerr.Newf("%s: empty file", name)
		}
		return nil, crerr.Wrapf(err, "read header of %s", name)
	}

	t := &table{width: len(header), columns: make(map[string]int, len(header))}
	seen := make(map[string]int, len(header))
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, utf8BOM)
		}
		col = strings.TrimSpace(col)
		key := col
		if n := seen[col]; n > 0 {
			key = col + "." + strconv.Itoa(n)
		}
		seen[col]++
		t.columns[key] = i
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, crerr.Wrapf(err, "read %s", name)
		}
		t.records = append(t.records, record)
	}
	return t, nil
}

func (t *table) has(col string) bool {
	_, ok := t.columns[col]
	return ok
}

func (t *table) require(name string, cols ...string) error {
	for _, col := range cols {
		if !t.has(col) {
			return crerr.Newf("%s: missing column %q", name, col)
		}
	}
	return nil
}

// get returns the first present column among cols, empty when none is present.
func (t *table) get(record []string, cols ...string) string {
	for _, col := range cols {
		idx, ok := t.columns[col]
		if !ok {
			continue
		}
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	return ""
}
