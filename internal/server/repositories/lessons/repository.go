// Package lessons stores course lessons.
package lessons

import (
	"context"

	"github.com/dmitrijs2005/schoolauth/internal/server/models"
)

// Repository lists lessons ordered by OrderIndex.
type Repository interface {
	Create(ctx context.Context, lesson *models.Lesson) (*models.Lesson, error)
	List(ctx context.Context) ([]models.Lesson, error)
}
