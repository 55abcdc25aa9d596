package lessons

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/schoolauth/internal/dbx"
	"github.com/dmitrijs2005/schoolauth/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, lesson *models.Lesson) (*models.Lesson, error) {
	query := `
		INSERT INTO course_lessons (title, description, video_url, order_index)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, lesson.Title, lesson.Description, lesson.VideoURL, lesson.OrderIndex).
		Scan(&lesson.ID, &lesson.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return lesson, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Lesson, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, video_url, order_index, created_at
		FROM course_lessons
		ORDER BY order_index, created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.VideoURL, &l.OrderIndex, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
