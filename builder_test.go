package sqlbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	t.Run("keywords and idents space-separated", func(t *testing.T) {
		var b Builder
		got := b.Keyword("SELECT").Raw("*").Keyword("FROM").Ident("users").String()
		assert.Equal(t, "SELECT * FROM users", got)
	})

	t.Run("ident list", func(t *testing.T) {
		var b Builder
		got := b.Keyword("SELECT").IdentList("id", "name").Keyword("FROM").Ident("users").String()
		assert.Equal(t, "SELECT id, name FROM users", got)
	})

	t.Run("raw joins fragments", func(t *testing.T) {
		var b Builder
		got := b.Keyword("WHERE").Raw("id = $1 AND state = $2").String()
		assert.Equal(t, "WHERE id = $1 AND state = $2", got)
	})

	t.Run("no space before comma or semicolon", func(t *testing.T) {
		var b Builder
		got := b.Ident("a").Raw(", b").Raw("; SELECT 1").String()
		assert.Equal(t, "a, b; SELECT 1", got)
	})

	t.Run("empty builder", func(t *testing.T) {
		var b Builder
		assert.Equal(t, "", b.String())
	})
}

func TestSanitizeIdent(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"users", "users"},
		{"user_accounts", "user_accounts"},
		{"users;DROP TABLE users", "usersDROPTABLEusers"},
		{"name--", "name"},
		{"a.b", "ab"},
		{"id1", "id1"},
		// The whitelist is Unicode-aware: letters and digits outside
		// ASCII survive, punctuation still does not.
		{"café", "café"},
		{"商品;", "商品"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, sanitizeIdent(tt.in), tt.in)
		// Sanitization is idempotent.
		assert.Equal(t, tt.out, sanitizeIdent(sanitizeIdent(tt.in)), tt.in)
	}
}

func TestIdentList(t *testing.T) {
	assert.Equal(t, "id, name, email", identList([]string{"id", "name", "email"}))
	assert.Equal(t, "id, name", identList([]string{"id;", "na me"}))
	assert.Equal(t, "", identList(nil))
}
