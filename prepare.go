package sqlbind

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Statements are generated once per (record type, statement kind, dialect)
// and reused for the life of the process. The singleflight group keeps
// concurrent first uses of the same type from building the statement more
// than once; build failures are not cached, they simply fail fast again.
var (
	stmts      sync.Map // stmtKey -> *Stmt
	buildGroup singleflight.Group
)

type stmtKey struct {
	typ     reflect.Type
	op      Op
	dialect string
}

func (k stmtKey) String() string {
	return fmt.Sprintf("%s.%s|%s|%s", k.typ.PkgPath(), k.typ.Name(), k.op, k.dialect)
}

// Prepare returns the generated statement of the given kind for T,
// building and memoizing it on first use. The configuration is read from
// T's zero value, so T must implement Record on the value type.
//
// A logger installed with WithLogger receives the resolved SQL and its
// parameter count at Debug level; tracing observes the statement and never
// alters it.
func Prepare[T Record](op Op, dialect string, opts ...Option) (*Stmt, error) {
	var model T
	o := applyOptions(opts)

	t := reflect.TypeOf(model)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return nil, fmt.Errorf("sqlbind: cannot prepare a statement for an untyped nil record")
	}
	key := stmtKey{typ: t, op: op, dialect: dialect}

	s, ok := loadStmt(key)
	if !ok {
		v, err, _ := buildGroup.Do(key.String(), func() (any, error) {
			if s, ok := loadStmt(key); ok {
				return s, nil
			}
			ti, err := typeInfoOf(t)
			if err != nil {
				return nil, err
			}
			// Read the configuration from a fresh zero value of the record
			// type; T itself may be a (nil) pointer type.
			rec, ok := reflect.New(t).Elem().Interface().(Record)
			if !ok {
				rec = reflect.New(t).Interface().(Record)
			}
			s, err := buildStmt(ti, rec.SQLConfig(), op, dialect)
			if err != nil {
				return nil, err
			}
			stmts.Store(key, s)
			return s, nil
		})
		if err != nil {
			return nil, err
		}
		s = v.(*Stmt)
	}

	o.logger.Debug("resolved statement",
		zap.Stringer("op", op),
		zap.String("dialect", dialect),
		zap.String("query", s.Query()),
		zap.Int("params", s.NumParams()),
	)
	return s, nil
}

func loadStmt(key stmtKey) (*Stmt, bool) {
	v, ok := stmts.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Stmt), true
}
