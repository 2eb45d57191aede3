// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Answer model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// CreateAnswer inserts a new answer row. question_id is stored as given.
func CreateAnswer(ctx context.Context, db *gorm.DB, na domain.NewAnswer) (*domain.Answer, error) {
	a := &domain.Answer{
		Content:    na.Content,
		QuestionID: na.QuestionID,
	}
	return a, db.WithContext(ctx).Create(a).Error
}

// ListAnswers returns the answers referencing questionID in id order.
func ListAnswers(ctx context.Context, db *gorm.DB, questionID domain.QuestionID) ([]domain.Answer, error) {
	out := make([]domain.Answer, 0)
	err := db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
