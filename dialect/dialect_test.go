package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholder(t *testing.T) {
	tests := []struct {
		dialect string
		n       int
		want    string
	}{
		{Postgres, 1, "$1"},
		{Postgres, 12, "$12"},
		{SQLite, 1, "?1"},
		{SQLite, 3, "?3"},
		{MySQL, 1, "?"},
		{MySQL, 7, "?"},
		{"unknown", 2, "?"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Placeholder(tt.dialect, tt.n), "%s/%d", tt.dialect, tt.n)
	}
}
