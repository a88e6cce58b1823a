package sqlbind

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"

	"github.com/syssam/sqlbind/cache"
	"github.com/syssam/sqlbind/dialect"
	dsql "github.com/syssam/sqlbind/dialect/sql"
)

// The helpers below execute generated statements against any
// dialect.ExecQuerier, so they run unchanged on a driver connection and
// inside a transaction. The parameter vector is borrowed fresh from the
// record instance for the duration of one call; driver errors propagate
// unchanged, except that a zero-row single fetch becomes a NotFoundError.

// Insert executes the generated INSERT for entity and returns the number
// of affected rows.
func Insert[T Record](ctx context.Context, conn dialect.ExecQuerier, entity T, opts ...Option) (int64, error) {
	return exec[T](ctx, conn, OpInsert, entity, opts)
}

// Update executes the generated UPDATE for entity and returns the number
// of affected rows. The update-column values precede the condition values
// in the bound vector, mirroring the SET-then-WHERE placeholder order.
func Update[T Record](ctx context.Context, conn dialect.ExecQuerier, entity T, opts ...Option) (int64, error) {
	return exec[T](ctx, conn, OpUpdate, entity, opts)
}

// Delete executes the generated DELETE for entity and returns the number
// of affected rows.
func Delete[T Record](ctx context.Context, conn dialect.ExecQuerier, entity T, opts ...Option) (int64, error) {
	return exec[T](ctx, conn, OpDelete, entity, opts)
}

func exec[T Record](ctx context.Context, conn dialect.ExecQuerier, op Op, entity T, opts []Option) (int64, error) {
	s, err := Prepare[T](op, conn.Dialect(), opts...)
	if err != nil {
		return 0, err
	}
	args, err := s.Params(entity)
	if err != nil {
		return 0, err
	}
	var res sql.Result
	if err := conn.Exec(ctx, s.Query(), args, &res); err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// InsertReturning executes the generated INSERT and scans the value of the
// Returning column into R (typically the generated key). The record's
// configuration must declare Returning. On SQLite and MySQL the statement
// chains a rowid lookup after the INSERT, which requires a driver that
// accepts multi-statement queries.
func InsertReturning[T Record, R any](ctx context.Context, conn dialect.ExecQuerier, entity T, opts ...Option) (R, error) {
	var ret R
	s, err := Prepare[T](OpInsert, conn.Dialect(), opts...)
	if err != nil {
		return ret, err
	}
	if !s.returning {
		return ret, fmt.Errorf("sqlbind: %s declares no Returning column", s.info.typ.Name())
	}
	args, err := s.Params(entity)
	if err != nil {
		return ret, err
	}
	var rows dsql.Rows
	if err := conn.Query(ctx, s.Query(), args, &rows); err != nil {
		return ret, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return ret, err
		}
		return ret, &NotFoundError{label: s.info.typ.Name()}
	}
	if err := rows.Scan(&ret); err != nil {
		return ret, err
	}
	return ret, rows.Err()
}

// Get executes the generated SELECT for *entity, binding its condition
// values, and materializes the first matching row back into *entity. A
// zero-row result returns a NotFoundError rather than an empty success.
func Get[T Record](ctx context.Context, conn dialect.ExecQuerier, entity *T, opts ...Option) error {
	s, err := Prepare[T](OpSelect, conn.Dialect(), opts...)
	if err != nil {
		return err
	}
	args, err := s.Params(*entity)
	if err != nil {
		return err
	}
	var rows dsql.Rows
	if err := conn.Query(ctx, s.Query(), args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return &NotFoundError{label: s.info.typ.Name()}
	}
	if err := s.info.scanRow(rows, reflect.ValueOf(entity).Elem()); err != nil {
		return err
	}
	return rows.Err()
}

// Select executes the generated SELECT for entity, binding its condition
// values, and returns every matching row as a record slice. With a
// WithCache option the result set is served from and stored to the cache,
// keyed by the generated SQL and the bound values.
func Select[T Record](ctx context.Context, conn dialect.ExecQuerier, entity T, opts ...Option) ([]T, error) {
	o := applyOptions(opts)
	s, err := Prepare[T](OpSelect, conn.Dialect(), opts...)
	if err != nil {
		return nil, err
	}
	args, err := s.Params(entity)
	if err != nil {
		return nil, err
	}

	var key string
	if o.cache != nil {
		key = cache.Key{Query: s.Query(), Args: args}.String()
		if data, err := o.cache.Get(ctx, key); err == nil && data != nil {
			var out []T
			if err := cache.Decode(data, &out); err == nil {
				return out, nil
			}
			// Undecodable entries are treated as misses.
		}
	}

	var rows dsql.Rows
	if err := conn.Query(ctx, s.Query(), args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var rec T
		if err := s.info.scanRow(rows, reflect.ValueOf(&rec).Elem()); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if o.cache != nil {
		if data, err := cache.Encode(out); err == nil {
			_ = o.cache.Set(ctx, key, data, o.cacheTTL)
		}
	}
	return out, nil
}

// InTx runs fn inside a transaction on drv, committing when fn returns nil
// and rolling back otherwise. The generated SQL is identical inside and
// outside a transaction; only the execution scope changes.
func InTx(ctx context.Context, drv dialect.Driver, fn func(tx dialect.Tx) error) error {
	tx, err := drv.Tx(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	return tx.Commit()
}
