// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints:
// the structured error envelope, the single rejection mapper, and helpers for
// success responses.
//
// Conventions:
//   - Handlers never pick a status for a failure themselves. They call
//     `reject()`, which runs MapError and writes an ErrorResponse.
//   - MapError is total: every error maps to exactly one status, and anything
//     it does not recognize falls through to 404 "Route not found".
//   - `fail()` writes the envelope and logs server-side errors with the
//     request-scoped logger.
//
// Example error response:
//
//	HTTP/1.1 416 Requested Range Not Satisfiable
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "missing_parameters",
//	  "message": "Missing parameter."
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: Optional correlation ID, echoed from X-Request-ID header, used
//     to correlate server logs with client-side errors.
//   - Code: A stable, machine-readable string (see errors.go constants).
//   - Message: A human-readable error description, safe for display to users.
//
// This struct is used in OpenAPI documentation via Swagger annotations.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"question_not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"Question not found"`
}

// DecodeError reports that a request body could not be decoded into the
// expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return e.Err.Error() + ", Please try again later!" }

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrCORSForbidden is raised by the CORS guard for requests outside the policy.
var ErrCORSForbidden = errors.New("CORS request forbidden: origin not allowed")

// errNoRoute marks requests that matched no route.
var errNoRoute = errors.New("Route not found")

// Rejection is the HTTP rendering of a failure.
type Rejection struct {
	Status  int
	Code    string
	Message string
}

// MapError converts any failure that reached the HTTP boundary into a status,
// code and message. Branches are evaluated in this order:
//
//	DatabaseQueryError         -> 422
//	any other domain.Error     -> 416
//	*DecodeError               -> 422
//	ErrCORSForbidden           -> 403
//	anything else              -> 404 "Route not found"
func MapError(err error) Rejection {
	if e, ok := domain.AsError(err); ok {
		if e.Kind == domain.KindDatabaseQuery {
			return Rejection{http.StatusUnprocessableEntity, e.Kind.String(), e.Error()}
		}
		return Rejection{http.StatusRequestedRangeNotSatisfiable, e.Kind.String(), e.Error()}
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return Rejection{http.StatusUnprocessableEntity, ErrCodeInvalidBody, de.Error()}
	}
	if errors.Is(err, ErrCORSForbidden) {
		return Rejection{http.StatusForbidden, ErrCodeForbidden, ErrCORSForbidden.Error()}
	}
	return Rejection{http.StatusNotFound, ErrCodeNotFound, errNoRoute.Error()}
}

// reject maps err and aborts the request with the resulting envelope.
// Backend failures are already logged with their cause and operation by the
// store, against the request-scoped logger.
func reject(c *gin.Context, err error) {
	rj := MapError(err)
	fail(c, rj.Status, rj.Code, rj.Message)
}

// Reject is the exported variant of reject(), used by router-level fallbacks
// and middleware that must share the mapping.
func Reject(c *gin.Context, err error) { reject(c, err) }

// NoRoute is the fallback handler for unmatched routes.
func NoRoute(c *gin.Context) { reject(c, errNoRoute) }

// fail aborts the request with a structured error and logs server-side errors.
//
// Server errors (>=500) are logged using the request-scoped logger from middleware.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	// Log 5xx (server-side) with request-scoped logger
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// text writes a plain-text success response.
func text(c *gin.Context, msg string) {
	c.String(http.StatusOK, msg)
}
