// Package pagination extracts and validates list-endpoint query parameters.
//
// Two parameter shapes are recognized:
//
//	?limit=10&offset=20   // at most 10 items, skipping the first 20
//	?start=20&end=30      // items [20, 30), converted to offset=20, limit=10
//
// Validation never touches the store: shape errors (a lone key, non-integer
// or negative values, start > end) are reported up front. A window that
// extends past the end of the result set is not an error; the store simply
// returns fewer (or zero) items.
package pagination

import (
	"strconv"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// Query parameter names.
const (
	KeyLimit  = "limit"
	KeyOffset = "offset"
	KeyStart  = "start"
	KeyEnd    = "end"
)

// Pagination is a validated paging request. A nil Limit means "no limit".
// The zero value returns the full result set.
type Pagination struct {
	Limit  *int
	Offset int
}

// IsZero reports whether no pagination was requested.
func (p Pagination) IsZero() bool { return p.Limit == nil && p.Offset == 0 }

// Extract parses params into a Pagination.
//
// Rules, in order:
//   - limit/offset takes precedence over start/end when both pairs are sent.
//   - A pair with one key missing fails with domain.ErrMissingParameters.
//   - A value that is not a non-negative integer fails with a
//     domain.ParseError wrapping the *strconv.NumError.
//   - start > end fails with domain.ErrStartLargerThanEnd.
//   - No recognized key yields the zero Pagination and a nil error.
func Extract(params map[string]string) (Pagination, error) {
	_, hasLimit := params[KeyLimit]
	_, hasOffset := params[KeyOffset]
	_, hasStart := params[KeyStart]
	_, hasEnd := params[KeyEnd]

	switch {
	case hasLimit && hasOffset:
		limit, err := parseIndex(params[KeyLimit])
		if err != nil {
			return Pagination{}, err
		}
		offset, err := parseIndex(params[KeyOffset])
		if err != nil {
			return Pagination{}, err
		}
		return Pagination{Limit: &limit, Offset: offset}, nil

	case hasLimit || hasOffset:
		return Pagination{}, domain.ErrMissingParameters

	case hasStart && hasEnd:
		start, err := parseIndex(params[KeyStart])
		if err != nil {
			return Pagination{}, err
		}
		end, err := parseIndex(params[KeyEnd])
		if err != nil {
			return Pagination{}, err
		}
		if start > end {
			return Pagination{}, domain.ErrStartLargerThanEnd
		}
		limit := end - start
		return Pagination{Limit: &limit, Offset: start}, nil

	case hasStart || hasEnd:
		return Pagination{}, domain.ErrMissingParameters
	}

	return Pagination{}, nil
}

// Window applies p to a slice length n and returns the [lo, hi) bounds,
// clamped to n. Used by in-memory stores.
func (p Pagination) Window(n int) (lo, hi int) {
	lo = min(max(p.Offset, 0), n)
	hi = n
	if p.Limit != nil && *p.Limit < hi-lo {
		hi = lo + max(*p.Limit, 0)
	}
	return lo, hi
}

// parseIndex accepts unsigned decimal integers that fit in an int; a sign is
// a syntax error.
func parseIndex(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, strconv.IntSize-1)
	if err != nil {
		return 0, domain.ParseError(err)
	}
	return int(n), nil
}
