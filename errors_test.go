package sqlbind

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	err := error(&NotFoundError{label: "Account"})
	assert.Equal(t, "sqlbind: Account not found", err.Error())
	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, ErrNotFound))

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Account", nf.Label())

	// Wrapping keeps the classification intact.
	wrapped := fmt.Errorf("fetch account: %w", err)
	assert.True(t, IsNotFound(wrapped))
	assert.True(t, errors.Is(wrapped, ErrNotFound))

	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestMissingAttributeError(t *testing.T) {
	err := error(&MissingAttributeError{Type: "Account", Op: OpDelete, Attribute: "Where"})
	assert.Equal(t, "sqlbind: Account: missing Where attribute required for DELETE", err.Error())
	assert.True(t, IsMissingAttribute(err))
	assert.True(t, IsMissingAttribute(fmt.Errorf("prepare: %w", err)))
	assert.False(t, IsMissingAttribute(nil))
	assert.False(t, IsMissingAttribute(errors.New("boom")))
	assert.False(t, IsInvalidAttribute(err))
}

func TestInvalidAttributeError(t *testing.T) {
	err := error(&InvalidAttributeError{Type: "Account", Attribute: "Where", Reason: "unmatched marker"})
	assert.Equal(t, "sqlbind: Account: invalid Where attribute: unmatched marker", err.Error())
	assert.True(t, IsInvalidAttribute(err))
	assert.True(t, IsInvalidAttribute(fmt.Errorf("prepare: %w", err)))
	assert.False(t, IsInvalidAttribute(nil))
	assert.False(t, IsMissingAttribute(err))
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "INSERT", OpInsert.String())
	assert.Equal(t, "UPDATE", OpUpdate.String())
	assert.Equal(t, "DELETE", OpDelete.String())
	assert.Equal(t, "SELECT", OpSelect.String())
	assert.Equal(t, "Op(9)", Op(9).String())
}
