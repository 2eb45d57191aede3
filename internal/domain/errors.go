package domain

import (
	"errors"
	"fmt"
)

// Kind enumerates the recoverable failure kinds of the service. The set is
// closed: every fallible operation returns one of these or nil.
type Kind uint8

const (
	// KindParse means a pagination or path value was not an integer.
	KindParse Kind = iota + 1
	// KindMissingParameters means only one half of a parameter pair was sent.
	KindMissingParameters
	// KindOutOfBounds means an index was outside the accepted range.
	KindOutOfBounds
	// KindStartLargerThanEnd means start > end in a start/end window.
	KindStartLargerThanEnd
	// KindQuestionNotFound means no question exists for the given id.
	KindQuestionNotFound
	// KindDatabaseQuery means the backing store rejected or failed a query.
	KindDatabaseQuery
)

// String returns a stable, machine-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse_error"
	case KindMissingParameters:
		return "missing_parameters"
	case KindOutOfBounds:
		return "out_of_bounds"
	case KindStartLargerThanEnd:
		return "start_larger_than_end"
	case KindQuestionNotFound:
		return "question_not_found"
	case KindDatabaseQuery:
		return "database_query_error"
	default:
		return "unknown"
	}
}

// Error is the tagged failure value returned by the pagination extractor and
// by every Store implementation. Err carries the underlying cause, if any.
type Error struct {
	Kind Kind
	Err  error
}

// Error renders the fixed display text for the kind.
func (e *Error) Error() string {
	switch e.Kind {
	case KindParse:
		if e.Err != nil {
			return fmt.Sprintf("cannot parse parameter: %v", e.Err)
		}
		return "cannot parse parameter"
	case KindMissingParameters:
		return "Missing parameter."
	case KindOutOfBounds:
		return "Index out of bounds."
	case KindStartLargerThanEnd:
		return "Start larger than end."
	case KindQuestionNotFound:
		return "Question not found"
	case KindDatabaseQuery:
		return "Cannot update, invalid data."
	default:
		return "unknown error"
	}
}

// Unwrap exposes the cause so callers can inspect e.g. *strconv.NumError.
func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrOutOfBounds)
// works regardless of the wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrParse              = &Error{Kind: KindParse}
	ErrMissingParameters  = &Error{Kind: KindMissingParameters}
	ErrOutOfBounds        = &Error{Kind: KindOutOfBounds}
	ErrStartLargerThanEnd = &Error{Kind: KindStartLargerThanEnd}
	ErrQuestionNotFound   = &Error{Kind: KindQuestionNotFound}
	ErrDatabaseQuery      = &Error{Kind: KindDatabaseQuery}
)

// ParseError wraps an integer parse failure.
func ParseError(cause error) error { return &Error{Kind: KindParse, Err: cause} }

// DatabaseQueryError wraps a backing-store failure.
func DatabaseQueryError(cause error) error { return &Error{Kind: KindDatabaseQuery, Err: cause} }

// AsError extracts the *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
