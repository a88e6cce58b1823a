package sqlbind

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/sqlbind/dialect"
)

func TestParamCounter(t *testing.T) {
	c := NewParamCounter()
	assert.Equal(t, 1, c.Current())
	assert.Equal(t, 0, c.Count())

	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 2, c.Next())
	assert.Equal(t, 3, c.Next())

	assert.Equal(t, 4, c.Current())
	assert.Equal(t, 3, c.Count())
}

func TestNumberClause(t *testing.T) {
	tests := []struct {
		name    string
		clause  string
		dialect string
		start   int // positions consumed before the clause
		want    string
	}{
		{"single marker", "id = $", dialect.Postgres, 0, "id = $1"},
		{"two markers", "state = $ AND age > $", dialect.Postgres, 0, "state = $1 AND age > $2"},
		{"continuation", "total > $", dialect.Postgres, 2, "total > $3"},
		{"sqlite numbered", "id = $", dialect.SQLite, 0, "id = ?1"},
		{"mysql bare", "id = $ AND age > $", dialect.MySQL, 0, "id = ? AND age > ?"},
		{"no markers untouched", "deleted_at IS NULL", dialect.Postgres, 0, "deleted_at IS NULL"},
		{"empty", "", dialect.Postgres, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewParamCounter()
			for i := 0; i < tt.start; i++ {
				c.Next()
			}
			assert.Equal(t, tt.want, numberClause(tt.clause, tt.dialect, c))
		})
	}
}

// One counter threads SET, WHERE and HAVING: numbering a second clause
// continues exactly where the first stopped.
func TestNumberClauseSharedCounter(t *testing.T) {
	c := NewParamCounter()
	where := numberClause("state = $", dialect.Postgres, c)
	having := numberClause("count > $ AND sum < $", dialect.Postgres, c)
	assert.Equal(t, "state = $1", where)
	assert.Equal(t, "count > $2 AND sum < $3", having)
	assert.Equal(t, 3, c.Count())
}
