// Package sqlbind generates SQL statements from struct metadata and binds
// struct field values to their placeholders in a deterministic order.
//
// A record type declares its statement shape once through the Record
// interface:
//
//	type User struct {
//		ID    int64  `db:"id"`
//		Name  string `db:"name"`
//		Email string `db:"email"`
//	}
//
//	func (User) SQLConfig() sqlbind.Config {
//		return sqlbind.Config{
//			Table:  "users",
//			Where:  "id = $",
//			Update: "name, email",
//		}
//	}
//
// Statements are built once per (record type, operation, dialect) and
// memoized; the bare $ markers in clauses are numbered per dialect at
// build time ($1.. on Postgres, ?1.. on SQLite, ? on MySQL). Execution
// goes through any dialect.ExecQuerier, so the same calls work on a
// driver connection and inside a transaction:
//
//	drv, err := sql.Open(dialect.Postgres, dsn)
//	...
//	n, err := sqlbind.Update(ctx, drv, user)
//
// The bound parameter vector always lists update-column values first and
// condition values second, matching the placeholder numbering of the
// generated statement.
package sqlbind
