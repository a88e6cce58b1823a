package sqlbind

import (
	"fmt"
	"reflect"

	dsql "github.com/syssam/sqlbind/dialect/sql"
)

// FromRows materializes the current row of rows into dest, matching
// result columns to record fields by column name. dest must be a non-nil
// pointer to a struct; a result column with no matching field is an
// error. Callers position rows with Next before calling.
func FromRows(rows dsql.ColumnScanner, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("sqlbind: from rows: dest must be a non-nil pointer, got %T", dest)
	}
	ti, err := typeInfoOf(rv.Type())
	if err != nil {
		return err
	}
	return ti.scanRow(rows, rv.Elem())
}

// scanRow scans the current row into dest field by field, resolving each
// result column through the declared column mapping.
func (ti *typeInfo) scanRow(rows dsql.ColumnScanner, dest reflect.Value) error {
	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	targets := make([]any, len(columns))
	for i, col := range columns {
		ci, ok := ti.byName[col]
		if !ok {
			return fmt.Errorf("sqlbind: unknown column %q for record type %s", col, ti.typ.Name())
		}
		targets[i] = dest.Field(ti.cols[ci].field).Addr().Interface()
	}
	return rows.Scan(targets...)
}
