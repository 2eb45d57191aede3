// Package store is the persistence boundary of the service. A Store owns the
// question and answer collections and is shared by every request handler, so
// all implementations are safe for concurrent use.
//
// Every fallible operation returns nil or a *domain.Error. Backend failures
// that do not map to a more specific kind surface as domain.ErrDatabaseQuery.
package store

import (
	"context"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// Store is the CRUD surface consumed by the HTTP handlers.
type Store interface {
	// GetQuestions returns questions in stable order, skipping offset items
	// and returning at most *limit items (all remaining when limit is nil).
	// A window past the end yields an empty slice, never an error.
	GetQuestions(ctx context.Context, limit *int, offset int) ([]domain.Question, error)
	// GetQuestion returns one question or domain.ErrQuestionNotFound.
	GetQuestion(ctx context.Context, id domain.QuestionID) (domain.Question, error)
	// CountQuestions returns the number of stored questions.
	CountQuestions(ctx context.Context) (int64, error)
	// AddQuestion assigns an id, persists the question and returns it.
	AddQuestion(ctx context.Context, nq domain.NewQuestion) (domain.Question, error)
	// UpdateQuestion replaces the question stored under id. The id inside q
	// is ignored.
	UpdateQuestion(ctx context.Context, q domain.Question, id domain.QuestionID) (domain.Question, error)
	// DeleteQuestion removes the question under id. It fails with
	// domain.ErrQuestionNotFound, without mutating anything, when absent.
	DeleteQuestion(ctx context.Context, id domain.QuestionID) error
	// AddAnswer assigns an id and persists the answer. QuestionID is stored
	// as given.
	AddAnswer(ctx context.Context, na domain.NewAnswer) (domain.Answer, error)
	// GetAnswers lists the answers referencing questionID in id order.
	GetAnswers(ctx context.Context, questionID domain.QuestionID) ([]domain.Answer, error)
	// Close releases backend resources.
	Close() error
}

// Backend names used as span attributes.
const (
	backendMemory = "memory"
	backendSQL    = "sql"
)

// Operation names used as metric labels and span names.
const (
	opGetQuestions   = "get_questions"
	opGetQuestion    = "get_question"
	opCountQuestions = "count_questions"
	opAddQuestion    = "add_question"
	opUpdateQuestion = "update_question"
	opDeleteQuestion = "delete_question"
	opAddAnswer      = "add_answer"
	opGetAnswers     = "get_answers"
)
