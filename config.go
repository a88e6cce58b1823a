package sqlbind

import (
	"reflect"
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/iancoleman/strcase"
)

// Record is implemented by types that declare SQL-generation attributes.
// The configuration is read from the zero value once, on first use of the
// type, and the generated statement is reused for the life of the process;
// implement SQLConfig on the value type with no side effects.
type Record interface {
	SQLConfig() Config
}

// Config declares the SQL-generation attributes for a record type. It is
// the explicit, validated counterpart of annotation-driven metadata: every
// field is plain data, resolved eagerly when the first statement for the
// type is built.
//
// Attributes that do not apply to the requested statement kind are
// ignored, so one record type can serve several operations.
type Config struct {
	// Table is the target table name. Required for every statement kind.
	Table string

	// Where is a condition fragment with bare $ markers, one per
	// parameter slot ("id = $", "state >= $ AND age < $"). Optional for
	// SELECT and UPDATE; required for DELETE, which never generates an
	// unconditional statement.
	Where string

	// Update is the comma-separated list of columns an UPDATE statement
	// sets, in SET order. Required for UPDATE.
	Update string

	// Select overrides the projected column list. When empty the
	// projection defaults to all declared fields in declaration order.
	Select string

	// Joins are raw join fragments inserted after the table name, in
	// order. They are trusted input and are not identifier-sanitized.
	Joins []string

	// GroupBy, Having and OrderBy populate the corresponding SELECT
	// clauses. Having may carry bare $ markers and continues the
	// parameter numbering wherever Where left it.
	GroupBy string
	Having  string
	OrderBy string

	// Limit and Offset, when set, must be non-negative.
	Limit  *int
	Offset *int

	// Returning names the column an INSERT reports back. Postgres emits a
	// RETURNING clause; SQLite and MySQL append a rowid lookup aliased to
	// the column name.
	Returning string
}

// validate checks that the attributes a statement kind requires are
// present and well formed. Failures identify the attribute and the record
// type, and abort generation before any SQL is produced.
func (c Config) validate(typeName string, op Op) error {
	if strings.TrimSpace(c.Table) == "" {
		return &MissingAttributeError{Type: typeName, Op: op, Attribute: "Table"}
	}
	switch op {
	case OpUpdate:
		if strings.TrimSpace(c.Update) == "" {
			return &MissingAttributeError{Type: typeName, Op: op, Attribute: "Update"}
		}
	case OpDelete:
		// An absent Where would otherwise generate an unconditional
		// DELETE; that has to be an explicit decision, not a default.
		if strings.TrimSpace(c.Where) == "" {
			return &MissingAttributeError{Type: typeName, Op: op, Attribute: "Where"}
		}
	}
	if c.Limit != nil && *c.Limit < 0 {
		return &InvalidAttributeError{Type: typeName, Attribute: "Limit", Reason: "must be non-negative"}
	}
	if c.Offset != nil && *c.Offset < 0 {
		return &InvalidAttributeError{Type: typeName, Attribute: "Offset", Reason: "must be non-negative"}
	}
	return nil
}

// updateColumns returns the Update attribute as a trimmed column list,
// preserving the order given in the attribute.
func (c Config) updateColumns() []string {
	if strings.TrimSpace(c.Update) == "" {
		return nil
	}
	parts := strings.Split(c.Update, ",")
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cols = append(cols, p)
		}
	}
	return cols
}

// DefaultTable returns the conventional table name for a record type: the
// pluralized snake_case form of the type name ("UserAccount" becomes
// "user_accounts"). It is a convenience for building Config values; Table
// is still required and an empty one is still rejected.
func DefaultTable(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return ""
	}
	return inflect.Pluralize(strcase.ToSnake(t.Name()))
}

// Int returns a pointer to n, for the Limit and Offset attributes.
func Int(n int) *int {
	return &n
}
