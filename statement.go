package sqlbind

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/syssam/sqlbind/dialect"
)

// Op identifies the statement kind generated for a record type.
type Op uint8

// Statement kinds.
const (
	OpInsert Op = iota
	OpUpdate
	OpDelete
	OpSelect
)

// String returns the SQL verb of the statement kind.
func (o Op) String() string {
	switch o {
	case OpInsert:
		return "INSERT"
	case OpUpdate:
		return "UPDATE"
	case OpDelete:
		return "DELETE"
	case OpSelect:
		return "SELECT"
	default:
		return fmt.Sprintf("Op(%d)", o)
	}
}

// Stmt is a generated statement: the SQL text built once per record type,
// statement kind and dialect, and the extraction plan that produces the
// matching parameter vector from a record instance. A Stmt is immutable
// and safe for concurrent use.
//
// The invariant every generator upholds: the number of placeholders in the
// SQL text equals the length of the plan, and plan position i supplies the
// value bound to placeholder i+1.
type Stmt struct {
	op        Op
	dialect   string
	query     string
	plan      []int // struct field indexes, one per placeholder
	info      *typeInfo
	returning bool
}

// Query returns the generated SQL string.
func (s *Stmt) Query() string {
	return s.query
}

// Op returns the statement kind.
func (s *Stmt) Op() Op {
	return s.op
}

// Dialect returns the dialect the statement was generated for.
func (s *Stmt) Dialect() string {
	return s.dialect
}

// NumParams returns the number of placeholders in the statement, which
// always equals the length of the vector Params produces.
func (s *Stmt) NumParams() int {
	return len(s.plan)
}

// Params returns the ordered parameter vector for a record instance. The
// values are read fresh from v on every call; vector position i binds to
// placeholder i+1. v must be an instance (or pointer to an instance) of
// the record type the statement was generated for.
func (s *Stmt) Params(v any) ([]any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != s.info.typ {
		return nil, fmt.Errorf("sqlbind: params: expected %s, got %T", s.info.typ, v)
	}
	args := make([]any, len(s.plan))
	for i, fi := range s.plan {
		args[i] = rv.Field(fi).Interface()
	}
	return args, nil
}

// buildStmt generates the statement of the given kind for a record type.
// It runs once per (type, kind, dialect); the result is cached by Prepare.
func buildStmt(ti *typeInfo, cfg Config, op Op, d string) (*Stmt, error) {
	if err := cfg.validate(ti.typ.Name(), op); err != nil {
		return nil, err
	}
	switch op {
	case OpInsert:
		return buildInsert(ti, cfg, d)
	case OpUpdate:
		return buildUpdate(ti, cfg, d)
	case OpDelete:
		return buildDelete(ti, cfg, d)
	case OpSelect:
		return buildSelect(ti, cfg, d)
	default:
		return nil, fmt.Errorf("sqlbind: unknown statement kind %v", op)
	}
}

// buildInsert generates INSERT INTO <table> (<cols>) VALUES (<markers>),
// with one placeholder per declared field in declaration order. The
// optional Returning column becomes a RETURNING clause on Postgres and a
// chained rowid lookup on SQLite and MySQL.
func buildInsert(ti *typeInfo, cfg Config, d string) (*Stmt, error) {
	counter := NewParamCounter()
	cols := ti.columnNames()
	markers := make([]string, len(cols))
	for i := range cols {
		markers[i] = dialect.Placeholder(d, counter.Next())
	}

	var b Builder
	b.Keyword("INSERT INTO").Ident(cfg.Table)
	b.Raw("(" + identList(cols) + ")")
	b.Keyword("VALUES")
	b.Raw("(" + strings.Join(markers, ", ") + ")")
	if cfg.Returning != "" {
		switch d {
		case dialect.SQLite:
			b.Raw("; SELECT last_insert_rowid() AS " + sanitizeIdent(cfg.Returning))
		case dialect.MySQL:
			b.Raw("; SELECT LAST_INSERT_ID() AS " + sanitizeIdent(cfg.Returning))
		default:
			b.Keyword("RETURNING").Ident(cfg.Returning)
		}
	}

	return &Stmt{
		op:        OpInsert,
		dialect:   d,
		query:     b.String(),
		plan:      ti.fieldIndexes(),
		info:      ti,
		returning: cfg.Returning != "",
	}, nil
}

// buildUpdate generates UPDATE <table> SET ... [WHERE ...]. SET
// placeholders are assigned positions 1..N directly, one per update
// column; the shared counter is then advanced past that range before the
// Where fragment is numbered, so its placeholders continue from N+1 in
// both the text and the parameter vector. An absent Where yields an
// unconditional UPDATE.
func buildUpdate(ti *typeInfo, cfg Config, d string) (*Stmt, error) {
	updateCols, updatePlan, err := ti.updatePlan(cfg)
	if err != nil {
		return nil, err
	}

	counter := NewParamCounter()
	sets := make([]string, len(updateCols))
	for i, col := range updateCols {
		sets[i] = sanitizeIdent(col) + " = " + dialect.Placeholder(d, i+1)
		counter.Next()
	}

	plan := updatePlan
	var where string
	if cond := strings.TrimSpace(cfg.Where); cond != "" {
		where = numberClause(cond, d, counter)
		condPlan, unresolved := ti.conditionFields(cond)
		if unresolved > 0 {
			return nil, &InvalidAttributeError{
				Type:      ti.typ.Name(),
				Attribute: "Where",
				Reason:    fmt.Sprintf("%d parameter marker(s) match no declared column", unresolved),
			}
		}
		plan = append(plan, condPlan...)
	}

	var b Builder
	b.Keyword("UPDATE").Ident(cfg.Table).Keyword("SET")
	b.Raw(strings.Join(sets, ", "))
	if where != "" {
		b.Keyword("WHERE").Raw(where)
	}

	return &Stmt{
		op:      OpUpdate,
		dialect: d,
		query:   b.String(),
		plan:    plan,
		info:    ti,
	}, nil
}

// updatePlan resolves the Update attribute to the declared columns it
// names, preserving the attribute order, and returns the column names with
// their struct field indexes.
func (ti *typeInfo) updatePlan(cfg Config) ([]string, []int, error) {
	var (
		cols []string
		plan []int
	)
	for _, col := range cfg.updateColumns() {
		ci, ok := ti.byName[col]
		if !ok {
			continue
		}
		cols = append(cols, col)
		plan = append(plan, ti.cols[ci].field)
	}
	if len(cols) == 0 {
		return nil, nil, &InvalidAttributeError{
			Type:      ti.typ.Name(),
			Attribute: "Update",
			Reason:    "lists no declared column",
		}
	}
	return cols, plan, nil
}

// buildDelete generates DELETE FROM <table> WHERE <numbered-condition>.
// The Where attribute is mandatory; validate rejects its absence before
// this point, so a dangling WHERE can never be emitted.
func buildDelete(ti *typeInfo, cfg Config, d string) (*Stmt, error) {
	counter := NewParamCounter()
	cond := strings.TrimSpace(cfg.Where)
	where := numberClause(cond, d, counter)
	plan, err := ti.conditionPlan(cond, "")
	if err != nil {
		return nil, err
	}

	var b Builder
	b.Keyword("DELETE FROM").Ident(cfg.Table)
	b.Keyword("WHERE").Raw(where)

	return &Stmt{
		op:      OpDelete,
		dialect: d,
		query:   b.String(),
		plan:    plan,
		info:    ti,
	}, nil
}

// buildSelect generates a SELECT with its optional clauses in the fixed
// order SELECT, FROM, JOIN, WHERE, GROUP BY, HAVING, ORDER BY, LIMIT,
// OFFSET; omitting attributes never reorders the remaining clauses. Where
// is numbered first and Having continues the counter from wherever Where
// left it, matching the textual order of the two clauses.
func buildSelect(ti *typeInfo, cfg Config, d string) (*Stmt, error) {
	counter := NewParamCounter()
	cond, havingCond := strings.TrimSpace(cfg.Where), strings.TrimSpace(cfg.Having)
	where := numberClause(cond, d, counter)
	having := numberClause(havingCond, d, counter)
	plan, err := ti.conditionPlan(cond, havingCond)
	if err != nil {
		return nil, err
	}

	projection := cfg.Select
	if projection == "" {
		projection = identList(ti.columnNames())
	}

	var b Builder
	b.Keyword("SELECT").Raw(projection)
	b.Keyword("FROM").Ident(cfg.Table)
	for _, join := range cfg.Joins {
		b.Raw(strings.TrimSpace(join))
	}
	if where != "" {
		b.Keyword("WHERE").Raw(where)
	}
	if cfg.GroupBy != "" {
		b.Keyword("GROUP BY").Raw(cfg.GroupBy)
	}
	if having != "" {
		b.Keyword("HAVING").Raw(having)
	}
	if cfg.OrderBy != "" {
		b.Keyword("ORDER BY").Raw(cfg.OrderBy)
	}
	if cfg.Limit != nil {
		b.Keyword("LIMIT").Raw(strconv.Itoa(*cfg.Limit))
	}
	if cfg.Offset != nil {
		b.Keyword("OFFSET").Raw(strconv.Itoa(*cfg.Offset))
	}

	return &Stmt{
		op:      OpSelect,
		dialect: d,
		query:   b.String(),
		plan:    plan,
		info:    ti,
	}, nil
}

// conditionPlan resolves the combined Where-then-Having parameter plan for
// SELECT and DELETE statements. When no marker resolves to a declared
// column the plan falls back to all declared fields, bound positionally,
// but only when that keeps the vector aligned with the placeholder count.
// A partial resolution or a mismatched fallback is rejected at build time
// rather than silently binding the wrong value to a slot.
func (ti *typeInfo) conditionPlan(where, having string) ([]int, error) {
	total := countMarkers(where) + countMarkers(having)
	if total == 0 {
		return nil, nil
	}
	plan, unresolved := ti.conditionFields(where)
	hp, hu := ti.conditionFields(having)
	plan = append(plan, hp...)
	unresolved += hu

	if unresolved == 0 {
		return plan, nil
	}
	attr := "Where"
	if countMarkers(having) > 0 {
		attr = "Where/Having"
	}
	if len(plan) > 0 {
		return nil, &InvalidAttributeError{
			Type:      ti.typ.Name(),
			Attribute: attr,
			Reason:    fmt.Sprintf("%d parameter marker(s) match no declared column", unresolved),
		}
	}
	if total != len(ti.cols) {
		return nil, &InvalidAttributeError{
			Type:      ti.typ.Name(),
			Attribute: attr,
			Reason: fmt.Sprintf("no marker matches a declared column and the marker count %d differs from the declared field count %d",
				total, len(ti.cols)),
		}
	}
	return ti.fieldIndexes(), nil
}
