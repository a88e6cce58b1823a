// Package dialect defines the database dialects supported by sqlbind and
// the driver interfaces generated statements are executed against.
//
// The package is deliberately small: sqlbind never manages connections,
// pools or transactions itself. It only needs a collaborator that can run
// "this SQL string with these ordered parameters"; everything else
// (transport, cancellation, retries) belongs to the driver behind the
// ExecQuerier surface.
package dialect

import (
	"context"
	"strconv"
)

// Dialect names accepted by the statement builders and by sql.Open.
const (
	// MySQL is the mysql dialect.
	MySQL = "mysql"
	// SQLite is the sqlite dialect.
	SQLite = "sqlite"
	// Postgres is the postgres dialect.
	Postgres = "postgres"
)

// Placeholder returns the marker for the n-th positional parameter
// (1-based) in the given dialect: $n for Postgres, ?n for SQLite and a
// bare ? for MySQL. Drivers bind parameters by position, not by the
// printed number, which is why the numbers a statement carries must rise
// monotonically left to right.
func Placeholder(dialect string, n int) string {
	switch dialect {
	case Postgres:
		return "$" + strconv.Itoa(n)
	case SQLite:
		return "?" + strconv.Itoa(n)
	default:
		return "?"
	}
}

// ExecQuerier is the execution surface a generated statement needs from
// its database collaborator. It is implemented by both Driver and Tx, so
// the sqlbind helpers run unchanged inside and outside a transaction.
type ExecQuerier interface {
	// Dialect returns the dialect name of the underlying database.
	Dialect() string
	// Exec executes a statement that returns no rows. v is either nil or
	// a *sql.Result destination.
	Exec(ctx context.Context, query string, args []any, v any) error
	// Query executes a statement that returns rows. v must be a
	// destination the implementation understands (e.g. *sql.Rows).
	Query(ctx context.Context, query string, args []any, v any) error
}

// Driver is the interface a database connection exposes to sqlbind.
type Driver interface {
	ExecQuerier

	// Tx starts and returns a new transaction.
	Tx(ctx context.Context) (Tx, error)

	// Close closes the underlying connection.
	Close() error
}

// Tx wraps a transaction scope around the ExecQuerier surface.
type Tx interface {
	ExecQuerier

	// Commit commits the transaction.
	Commit() error

	// Rollback discards the transaction.
	Rollback() error
}
