// Package querybuilder renders the few postgres statements the ledger sink
// issues. Values are always bound as $n placeholders.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// statement accumulates SQL text and the values bound to it.
type statement struct {
	sql  strings.Builder
	args []any
}

func (s *statement) bind(v any) string {
	s.args = append(s.args, v)
	return "$" + strconv.Itoa(len(s.args))
}

func (s *statement) clause(keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	s.sql.WriteString(" " + keyword + " ")
	s.sql.WriteString(strings.Join(parts, ", "))
}

func (s *statement) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			s.sql.WriteString(" WHERE ")
		} else {
			s.sql.WriteString(" AND ")
		}
		c.render(s)
	}
}

func (s *statement) tuple(values []any) {
	marks := make([]string, len(values))
	for i, v := range values {
		marks[i] = s.bind(v)
	}
	s.sql.WriteString("(" + strings.Join(marks, ", ") + ")")
}

func (s *statement) done() (string, []any, error) {
	return s.sql.String(), s.args, nil
}

type Condition interface {
	render(s *statement)
}

type inCondition struct {
	column string
	values []any
}

// In matches column against a value list. An empty list matches no row.
func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) render(s *statement) {
	if len(c.values) == 0 {
		s.sql.WriteString("1=0")
		return
	}
	s.sql.WriteString(c.column + " IN ")
	s.tuple(c.values)
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	groupBy []string
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) GroupBy(columns ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, columns...)
	return b
}

func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, columns...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("select columns are required")
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("select table is required")
	}

	var s statement
	s.sql.WriteString("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	s.where(b.where)
	s.clause("GROUP BY", b.groupBy)
	s.clause("ORDER BY", b.orderBy)
	return s.done()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim, typically an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	var s statement
	s.args = make([]any, 0, len(b.rows)*len(b.columns))
	s.sql.WriteString("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			s.sql.WriteString(", ")
		}
		s.tuple(row)
	}
	if b.suffix != "" {
		s.sql.WriteString(" " + b.suffix)
	}
	return s.done()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to render a DELETE without conditions.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("delete table is required")
	case len(b.where) == 0:
		return "", nil, fmt.Errorf("delete without where is not allowed")
	}

	var s statement
	s.sql.WriteString("DELETE FROM " + b.table)
	s.where(b.where)
	return s.done()
}
