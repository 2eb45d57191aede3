package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/repo"
)

// SQLStore persists questions and answers through GORM. Concurrency is
// bounded by the database/sql pool configured in repo.Open.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore wraps an open, migrated database handle.
func NewSQLStore(db *gorm.DB) *SQLStore { return &SQLStore{db: db} }

var _ Store = (*SQLStore)(nil)

// DB exposes the underlying handle (used by health checks and tests).
func (s *SQLStore) DB() *gorm.DB { return s.db }

// GetQuestions returns questions in primary-key order.
func (s *SQLStore) GetQuestions(ctx context.Context, limit *int, offset int) (out []domain.Question, err error) {
	ctx, done := track(ctx, opGetQuestions, backendSQL)
	defer func() { done(err) }()

	out, err = repo.ListQuestions(ctx, s.db, limit, offset)
	if err != nil {
		return nil, classify(ctx, opGetQuestions, err)
	}
	return out, nil
}

// GetQuestion returns the question stored under id.
func (s *SQLStore) GetQuestion(ctx context.Context, id domain.QuestionID) (_ domain.Question, err error) {
	ctx, done := track(ctx, opGetQuestion, backendSQL)
	defer func() { done(err) }()

	q, err := repo.GetQuestion(ctx, s.db, id)
	if err != nil {
		return domain.Question{}, classify(ctx, opGetQuestion, err)
	}
	return *q, nil
}

// CountQuestions returns the number of stored questions.
func (s *SQLStore) CountQuestions(ctx context.Context) (n int64, err error) {
	ctx, done := track(ctx, opCountQuestions, backendSQL)
	defer func() { done(err) }()

	n, err = repo.CountQuestions(ctx, s.db)
	if err != nil {
		return 0, classify(ctx, opCountQuestions, err)
	}
	return n, nil
}

// AddQuestion inserts nq; the database assigns the id.
func (s *SQLStore) AddQuestion(ctx context.Context, nq domain.NewQuestion) (_ domain.Question, err error) {
	ctx, done := track(ctx, opAddQuestion, backendSQL)
	defer func() { done(err) }()

	q, err := repo.CreateQuestion(ctx, s.db, nq)
	if err != nil {
		return domain.Question{}, classify(ctx, opAddQuestion, err)
	}
	return *q, nil
}

// UpdateQuestion overwrites the row under id.
func (s *SQLStore) UpdateQuestion(ctx context.Context, q domain.Question, id domain.QuestionID) (_ domain.Question, err error) {
	ctx, done := track(ctx, opUpdateQuestion, backendSQL)
	defer func() { done(err) }()

	out, err := repo.UpdateQuestion(ctx, s.db, id, q)
	if err != nil {
		return domain.Question{}, classify(ctx, opUpdateQuestion, err)
	}
	return *out, nil
}

// DeleteQuestion removes the row under id.
func (s *SQLStore) DeleteQuestion(ctx context.Context, id domain.QuestionID) (err error) {
	ctx, done := track(ctx, opDeleteQuestion, backendSQL)
	defer func() { done(err) }()

	return classify(ctx, opDeleteQuestion, repo.DeleteQuestion(ctx, s.db, id))
}

// AddAnswer inserts na; the database sequence assigns the id.
func (s *SQLStore) AddAnswer(ctx context.Context, na domain.NewAnswer) (_ domain.Answer, err error) {
	ctx, done := track(ctx, opAddAnswer, backendSQL)
	defer func() { done(err) }()

	a, err := repo.CreateAnswer(ctx, s.db, na)
	if err != nil {
		return domain.Answer{}, classify(ctx, opAddAnswer, err)
	}
	return *a, nil
}

// GetAnswers lists answers referencing questionID.
func (s *SQLStore) GetAnswers(ctx context.Context, questionID domain.QuestionID) (out []domain.Answer, err error) {
	ctx, done := track(ctx, opGetAnswers, backendSQL)
	defer func() { done(err) }()

	out, err = repo.ListAnswers(ctx, s.db, questionID)
	if err != nil {
		return nil, classify(ctx, opGetAnswers, err)
	}
	return out, nil
}

// Close closes the connection pool.
func (s *SQLStore) Close() error { return repo.Close(s.db) }

// classify maps a repo error onto the domain taxonomy. Missing rows become
// QuestionNotFound; every other backend failure is logged against the
// request-scoped logger and becomes DatabaseQueryError.
func classify(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := domain.AsError(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrQuestionNotFound
	}
	zerolog.Ctx(ctx).Error().Err(err).Str("op", op).Msg("store query failed")
	return domain.DatabaseQueryError(err)
}
