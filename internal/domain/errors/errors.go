package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotSupported is the sentinel behind every NotSupportedError
	ErrNotSupported = errors.New("not supported")

	// ErrInvalidInput is the sentinel behind every InvalidInputError
	ErrInvalidInput = errors.New("invalid input")
)

// NotSupportedError is returned when a caller asks for a profiling feature
// the engine deliberately does not implement. No partial result accompanies it.
type NotSupportedError struct {
	Feature string // e.g. "n-ary inclusion dependency discovery"
	Reason  string // optional
}

func (e *NotSupportedError) Error() string {
	msg := fmt.Sprintf("%s is not supported", e.Feature)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *NotSupportedError) Unwrap() error {
	return ErrNotSupported
}

// InvalidInputError describes malformed input handed to the profiler
// (ragged relations, incompatible position list indexes, bad column indices)
type InvalidInputError struct {
	Relation string // relation name (empty if unknown)
	Column   string // column name or index (empty if relation-level)
	Reason   string // human-readable explanation
	Expected int    // expected size/count (-1 if not applicable)
	Actual   int    // observed size/count (-1 if not applicable)
}

func (e *InvalidInputError) Error() string {
	var parts []string

	target := e.Relation
	if target == "" {
		target = "<anonymous>"
	}
	if e.Column != "" {
		target += "." + e.Column
	}
	parts = append(parts, fmt.Sprintf("invalid input in %s", target))

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.Expected >= 0 && e.Actual >= 0 {
		parts = append(parts, fmt.Sprintf("expected %d, got %d", e.Expected, e.Actual))
	}

	return strings.Join(parts, " - ")
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

func NewNaryINDNotSupported() *NotSupportedError {
	return &NotSupportedError{
		Feature: "n-ary inclusion dependency discovery",
		Reason:  "only unary INDs can be profiled",
	}
}

func NewColumnLengthMismatch(relation, column string, expected, actual int) *InvalidInputError {
	return &InvalidInputError{
		Relation: relation,
		Column:   column,
		Reason:   "column length differs from record count",
		Expected: expected,
		Actual:   actual,
	}
}

func NewColumnCountMismatch(relation string, attributes, columns int) *InvalidInputError {
	return &InvalidInputError{
		Relation: relation,
		Reason:   "attribute count differs from column count",
		Expected: attributes,
		Actual:   columns,
	}
}

func NewColumnOutOfRange(relation string, index, columns int) *InvalidInputError {
	return &InvalidInputError{
		Relation: relation,
		Column:   fmt.Sprintf("#%d", index),
		Reason:   fmt.Sprintf("column index out of range [0, %d)", columns),
		Expected: -1,
		Actual:   -1,
	}
}

// NewIncompatiblePLI reports an intersection between position list indexes that
// were not built over the same relation and record count.
func NewIncompatiblePLI(reason string, expected, actual int) *InvalidInputError {
	return &InvalidInputError{
		Reason:   "incompatible position list indexes: " + reason,
		Expected: expected,
		Actual:   actual,
	}
}

// IsNotSupported reports whether err is (or wraps) a NotSupportedError
func IsNotSupported(err error) bool {
	return errors.Is(err, ErrNotSupported)
}

// IsInvalidInput reports whether err is (or wraps) an InvalidInputError
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
