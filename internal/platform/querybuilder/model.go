package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModels renders one multi-row INSERT. Every model must share the same db columns.
func InsertModels(table string, models []any, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert models are required")
	}

	builder := InsertInto(table).Suffix(suffix)
	var columns []string
	for i, model := range models {
		cols, vals, err := columnsAndValuesFromModel(model)
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		if i == 0 {
			columns = cols
			builder.Columns(cols...)
		} else if strings.Join(cols, ",") != strings.Join(columns, ",") {
			return "", nil, fmt.Errorf("model %d columns differ from model 0", i)
		}
		builder.Values(vals...)
	}
	return builder.ToSQL()
}

// columnsAndValuesFromModel reads exported fields tagged with db, in field order.
func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a struct, got %s", value.Kind())
	}

	typ := value.Type()
	var (
		cols []string
		vals []any
	)
	for i := range typ.NumField() {
		field := typ.Field(i)
		tag, ok := field.Tag.Lookup("db")
		if !ok || !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name = strings.TrimSpace(name); name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, value.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", typ.Name())
	}
	return cols, vals, nil
}
