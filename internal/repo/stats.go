// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides aggregate queries used by the HTTP layer
// for list metadata (X-Total-Count).
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// CountQuestions returns the total number of stored questions.
func CountQuestions(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Question{}).Count(&total).Error
	return total, err
}
