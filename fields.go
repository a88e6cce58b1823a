package sqlbind

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// typeInfo is the per-type metadata resolved once from a record type: the
// declared columns in field-declaration order and the column-to-field
// mapping shared by the statement generators, the parameter extractors and
// the row materializer.
type typeInfo struct {
	typ    reflect.Type
	cols   []fieldColumn
	byName map[string]int // column name -> index into cols
}

type fieldColumn struct {
	name  string
	field int // struct field index
}

// typeInfoOf resolves the metadata for t, dereferencing pointers first.
func typeInfoOf(t reflect.Type) (*typeInfo, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("sqlbind: record type must be a struct, got %v", t)
	}
	ti := &typeInfo{typ: t, byName: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		name, ok := fieldColumnName(f)
		if !ok {
			continue
		}
		ti.byName[name] = len(ti.cols)
		ti.cols = append(ti.cols, fieldColumn{name: name, field: i})
	}
	if len(ti.cols) == 0 {
		return nil, fmt.Errorf("sqlbind: record type %s declares no columns", t.Name())
	}
	return ti, nil
}

// fieldColumnName resolves the column a struct field maps to: the first
// element of its db tag when present, the snake_case field name otherwise.
// A "-" tag opts the field out.
func fieldColumnName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup("db")
	if !ok {
		return strcase.ToSnake(f.Name), true
	}
	name := strings.TrimSpace(strings.Split(tag, ",")[0])
	switch name {
	case "-":
		return "", false
	case "":
		return strcase.ToSnake(f.Name), true
	}
	return name, true
}

// columnNames returns the declared column names in declaration order.
func (ti *typeInfo) columnNames() []string {
	names := make([]string, len(ti.cols))
	for i, c := range ti.cols {
		names[i] = c.name
	}
	return names
}

// fieldIndexes returns the struct field index of every declared column, in
// declaration order.
func (ti *typeInfo) fieldIndexes() []int {
	idx := make([]int, len(ti.cols))
	for i, c := range ti.cols {
		idx[i] = c.field
	}
	return idx
}

// clause tokenization
//
// Condition columns are located by tokenizing the clause and matching the
// exact pattern "identifier, comparison operator, marker". Matching whole
// tokens (never substrings) keeps a field named "id" from claiming the
// marker of a field named "valid".

type tokKind uint8

const (
	tokIdent tokKind = iota
	tokOp
	tokMarker
	tokOther
)

type token struct {
	kind tokKind
	text string
}

// tokenizeClause splits a condition fragment into identifiers, comparison
// operators, parameter markers and everything else. Literals, parentheses
// and punctuation come back as tokOther so that only genuinely adjacent
// identifier/operator/marker triples line up.
func tokenizeClause(clause string) []token {
	var toks []token
	rs := []rune(clause)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case r == marker:
			toks = append(toks, token{kind: tokMarker, text: "$"})
			i++
		case r == '_' || unicode.IsLetter(r):
			j := i
			for j < len(rs) && isIdentRune(rs[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: string(rs[i:j])})
			i = j
		case strings.ContainsRune("<>=!", r):
			j := i
			for j < len(rs) && strings.ContainsRune("<>=!", rs[j]) {
				j++
			}
			toks = append(toks, token{kind: tokOp, text: string(rs[i:j])})
			i = j
		case unicode.IsSpace(r):
			i++
		default:
			toks = append(toks, token{kind: tokOther, text: string(r)})
			i++
		}
	}
	return toks
}

// conditionFields resolves each $ marker in clause to a declared column
// and returns the matching struct field indexes, one per marker, in
// left-to-right occurrence order. A marker whose left-hand side is a bare
// declared column matches directly; otherwise the expression preceding the
// marker is searched right to left for a declared column token, which lets
// aggregate conditions such as "count > $" over an aliased projection
// still bind. unresolved counts the markers no declared column could be
// found for.
func (ti *typeInfo) conditionFields(clause string) (fields []int, unresolved int) {
	toks := tokenizeClause(clause)
	span := 0 // start of the token span owning the next marker
	for i, tok := range toks {
		if tok.kind != tokMarker {
			continue
		}
		fi, ok := ti.resolveMarker(toks, span, i)
		if ok {
			fields = append(fields, fi)
		} else {
			unresolved++
		}
		span = i + 1
	}
	return fields, unresolved
}

// resolveMarker finds the declared column bound to the marker at position
// mark, scanning the tokens of its span.
func (ti *typeInfo) resolveMarker(toks []token, span, mark int) (int, bool) {
	// Fast path: "ident op $" with strict token adjacency.
	if mark >= 2 && toks[mark-1].kind == tokOp && toks[mark-2].kind == tokIdent {
		if ci, ok := ti.byName[toks[mark-2].text]; ok {
			return ti.cols[ci].field, true
		}
	}
	// Fallback: nearest declared column anywhere in the span, e.g. the
	// word operators LIKE / IN, or "upper(name) = $".
	for j := mark - 1; j >= span; j-- {
		if toks[j].kind != tokIdent {
			continue
		}
		if ci, ok := ti.byName[toks[j].text]; ok {
			return ti.cols[ci].field, true
		}
	}
	return 0, false
}

// countMarkers returns the number of bare parameter markers in clause.
func countMarkers(clause string) int {
	return strings.Count(clause, string(marker))
}
