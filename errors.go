package sqlbind

import (
	"errors"
	"fmt"
)

// Standard sentinel errors.
var (
	// ErrNotFound is returned when a single-record fetch matches no rows.
	ErrNotFound = errors.New("sqlbind: record not found")
)

// NotFoundError reports that a single-record fetch returned zero rows. It
// is a distinct condition, not an empty success, so callers can tell "no
// such record" apart from a scan of zero values.
type NotFoundError struct {
	label string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sqlbind: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(err, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the record type label.
func (e *NotFoundError) Label() string {
	return e.label
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// MissingAttributeError reports a record type whose configuration lacks an
// attribute the requested statement kind requires. It is a programmer
// error surfaced on first use of the type, before any SQL is produced.
type MissingAttributeError struct {
	Type      string
	Op        Op
	Attribute string
}

// Error returns the error string.
func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("sqlbind: %s: missing %s attribute required for %s", e.Type, e.Attribute, e.Op)
}

// IsMissingAttribute returns true if the error is a MissingAttributeError.
func IsMissingAttribute(err error) bool {
	if err == nil {
		return false
	}
	var e *MissingAttributeError
	return errors.As(err, &e)
}

// InvalidAttributeError reports an attribute whose value cannot produce a
// statement with an aligned parameter vector, such as a Where fragment
// with a parameter marker that resolves to no declared column.
type InvalidAttributeError struct {
	Type      string
	Attribute string
	Reason    string
}

// Error returns the error string.
func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("sqlbind: %s: invalid %s attribute: %s", e.Type, e.Attribute, e.Reason)
}

// IsInvalidAttribute returns true if the error is an InvalidAttributeError.
func IsInvalidAttribute(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidAttributeError
	return errors.As(err, &e)
}
