// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are written into the
// ErrorResponse envelope (via `reject()` and `fail()` in this package). These
// codes provide clients with a stable, machine-readable error taxonomy that
// supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case.
//   - Domain failures reuse domain.Kind names (e.g. out_of_bounds,
//     question_not_found, database_query_error), so the code a client sees is
//     the kind the store or pagination layer raised.
//   - Transport failures use the generic codes below. Rate limiting and panic
//     recovery answer from the middleware package with its own codes.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "question_not_found",
//	  "message": "Question not found"
//	}
package handlers

const (
	ErrCodeInvalidBody = "invalid_body"
	ErrCodeForbidden   = "forbidden"
	ErrCodeNotFound    = "not_found"
)
