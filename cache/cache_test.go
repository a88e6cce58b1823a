package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	t.Run("miss returns nil nil", func(t *testing.T) {
		data, err := m.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "k", []byte("v"), 0))
		data, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), data)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "gone", []byte("v"), 0))
		require.NoError(t, m.Delete(ctx, "gone"))
		data, err := m.Get(ctx, "gone")
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("delete prefix", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "users|1", []byte("a"), 0))
		require.NoError(t, m.Set(ctx, "users|2", []byte("b"), 0))
		require.NoError(t, m.Set(ctx, "posts|1", []byte("c"), 0))
		require.NoError(t, m.DeletePrefix(ctx, "users|"))

		data, err := m.Get(ctx, "users|1")
		require.NoError(t, err)
		assert.Nil(t, data)
		data, err = m.Get(ctx, "posts|1")
		require.NoError(t, err)
		assert.Equal(t, []byte("c"), data)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "x", []byte("v"), 0))
		require.NoError(t, m.Clear(ctx))
		data, err := m.Get(ctx, "x")
		require.NoError(t, err)
		assert.Nil(t, data)
	})
}

func TestMemoryTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "short", []byte("v"), time.Millisecond))
	require.NoError(t, m.Set(ctx, "forever", []byte("v"), 0))
	time.Sleep(10 * time.Millisecond)

	data, err := m.Get(ctx, "short")
	require.NoError(t, err)
	assert.Nil(t, data, "expired entry must read as a miss")

	data, err = m.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), data, "zero ttl never expires")
}

func TestKeyString(t *testing.T) {
	k := Key{Query: "SELECT id FROM users WHERE id = $1", Args: []any{int64(7)}}
	assert.Equal(t, "SELECT id FROM users WHERE id = $1|7", k.String())

	// Same query, different arguments, different keys.
	k2 := Key{Query: k.Query, Args: []any{int64(8)}}
	assert.NotEqual(t, k.String(), k2.String())

	empty := Key{Query: "SELECT 1"}
	assert.Equal(t, "SELECT 1", empty.String())
}

// Vectors whose values concatenate to the same text must still produce
// distinct keys; a shared key would serve one query's cached rows to the
// other.
func TestKeyStringNoCollisions(t *testing.T) {
	tests := []struct {
		name string
		a, b []any
	}{
		{"adjacent strings", []any{"ab", "c"}, []any{"a", "bc"}},
		{"digit runs", []any{1, "23"}, []any{12, "3"}},
		{"type differs", []any{"7"}, []any{int64(7)}},
		{"arity differs", []any{"a", ""}, []any{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka := Key{Query: "SELECT 1", Args: tt.a}
			kb := Key{Query: "SELECT 1", Args: tt.b}
			assert.NotEqual(t, ka.String(), kb.String())
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	type row struct {
		ID   int64
		Name string
	}
	in := []row{{1, "a"}, {2, "b"}}

	data, err := Encode(in)
	require.NoError(t, err)

	var out []row
	require.NoError(t, Decode(data, &out))
	assert.Equal(t, in, out)
}
