package sqlbind

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dsql "github.com/syssam/sqlbind/dialect/sql"
)

func queryRows(t *testing.T, drv *dsql.Driver, query string) *dsql.Rows {
	t.Helper()
	var rows dsql.Rows
	require.NoError(t, drv.Query(context.Background(), query, nil, &rows))
	t.Cleanup(func() { assert.NoError(t, rows.Close()) })
	return &rows
}

func TestFromRows(t *testing.T) {
	drv, mock := mockDriver(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT email, id FROM accounts")).
		WillReturnRows(sqlmock.NewRows([]string{"email", "id"}).
			AddRow("neo@zion.io", int64(1)))

	rows := queryRows(t, drv, "SELECT email, id FROM accounts")
	require.True(t, rows.Next())

	// Columns bind by name, not position; a partial projection leaves the
	// remaining fields zero.
	var acc account
	require.NoError(t, FromRows(rows, &acc))
	assert.Equal(t, account{ID: 1, Email: "neo@zion.io"}, acc)
}

func TestFromRowsUnknownColumn(t *testing.T) {
	drv, mock := mockDriver(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT nope FROM accounts")).
		WillReturnRows(sqlmock.NewRows([]string{"nope"}).AddRow("x"))

	rows := queryRows(t, drv, "SELECT nope FROM accounts")
	require.True(t, rows.Next())

	var acc account
	err := FromRows(rows, &acc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown column "nope"`)
}

func TestFromRowsInvalidDest(t *testing.T) {
	drv, mock := mockDriver(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM accounts")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	rows := queryRows(t, drv, "SELECT id FROM accounts")
	require.True(t, rows.Next())

	require.Error(t, FromRows(rows, account{}))
	require.Error(t, FromRows(rows, nil))
	var p *account
	require.Error(t, FromRows(rows, p))
}
