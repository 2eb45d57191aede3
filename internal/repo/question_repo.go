// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Question model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a question is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Usage:
//
//	q, err := repo.UpdateQuestion(ctx, db, 7, domain.Question{Title: "t", Content: "c"})
//	if errors.Is(err, repo.ErrNotFound) {
//	    // handle missing
//	} else if err != nil {
//	    // handle DB failure
//	}
//
// Error classification into the service's error kinds happens one layer up,
// in store.SQLStore.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the store layer.
var ErrNotFound = gorm.ErrRecordNotFound

// ListQuestions returns questions in primary-key order, skipping offset rows
// and returning at most *limit rows (all remaining rows when limit is nil).
// An offset past the end yields an empty, non-nil slice.
func ListQuestions(ctx context.Context, db *gorm.DB, limit *int, offset int) ([]domain.Question, error) {
	out := make([]domain.Question, 0)
	q := db.WithContext(ctx).Order("id ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit != nil {
		q = q.Limit(max(*limit, 0))
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetQuestion fetches a single question by id, or ErrNotFound.
func GetQuestion(ctx context.Context, db *gorm.DB, id domain.QuestionID) (*domain.Question, error) {
	var q domain.Question
	if err := db.WithContext(ctx).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateQuestion inserts a new question. The id is assigned by the database.
func CreateQuestion(ctx context.Context, db *gorm.DB, nq domain.NewQuestion) (*domain.Question, error) {
	q := &domain.Question{
		Title:   nq.Title,
		Content: nq.Content,
		Tags:    nq.Tags,
	}
	if err := db.WithContext(ctx).Create(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

// UpdateQuestion overwrites title, content and tags of the question with the
// given id. The id inside q is ignored. If no row matches, it returns
// ErrNotFound.
func UpdateQuestion(ctx context.Context, db *gorm.DB, id domain.QuestionID, q domain.Question) (*domain.Question, error) {
	q.ID = 0
	res := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ?", id).
		Select("title", "content", "tags").
		Updates(&q)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	q.ID = id
	return &q, nil
}

// DeleteQuestion removes the question with the given id. Answers pointing at
// it are left untouched. If no row matches, it returns ErrNotFound.
func DeleteQuestion(ctx context.Context, db *gorm.DB, id domain.QuestionID) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Question{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
