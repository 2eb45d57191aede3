// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they extract and validate input, call the
// Store, and translate results into HTTP responses. Every failure goes
// through reject().
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/store"
)

// Handlers groups the question and answer endpoints around a shared Store.
type Handlers struct {
	store store.Store
}

// New constructs a Handlers instance bound to s.
func New(s store.Store) *Handlers {
	return &Handlers{store: s}
}

// questionID parses the :id path segment. Non-integer values fail with a
// domain ParseError.
func questionID(c *gin.Context) (domain.QuestionID, error) {
	n, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ParseError(err)
	}
	return domain.QuestionID(n), nil
}

// queryParams flattens the query string to its first value per key.
func queryParams(c *gin.Context) map[string]string {
	q := c.Request.URL.Query()
	out := make(map[string]string, len(q))
	for k, v := range q {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
