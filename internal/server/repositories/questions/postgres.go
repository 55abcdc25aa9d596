package questions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/dbx"
	"github.com/dmitrijs2005/schoolauth/internal/server/models"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateQuestion(ctx context.Context, q *models.Question) (*models.Question, error) {
	query := `INSERT INTO test_questions (lesson_id, text, points) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, q.LessonID, q.Text, q.Points).Scan(&q.ID); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}

// ListQuestions loads questions and answers with one LEFT JOIN and folds
// the answer rows into their question, keeping question order.
func (r *PostgresRepository) ListQuestions(ctx context.Context, lessonID string) ([]models.Question, error) {
	query := `
		SELECT q.id, q.lesson_id, q.text, q.points, a.id, a.text, a.correct
		FROM test_questions q
		LEFT JOIN test_answers a ON a.question_id = q.id
		WHERE ($1 = '' OR q.lesson_id::text = $1)
		ORDER BY q.created_at, q.id, a.created_at`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Question
	index := map[string]int{}
	for rows.Next() {
		var (
			q          models.Question
			answerID   *string
			answerText *string
			correct    *bool
		)
		if err := rows.Scan(&q.ID, &q.LessonID, &q.Text, &q.Points, &answerID, &answerText, &correct); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		i, ok := index[q.ID]
		if !ok {
			q.Answers = []models.Answer{}
			out = append(out, q)
			i = len(out) - 1
			index[q.ID] = i
		}
		if answerID != nil {
			a := models.Answer{ID: *answerID, QuestionID: q.ID}
			if answerText != nil {
				a.Text = *answerText
			}
			if correct != nil {
				a.Correct = *correct
			}
			out[i].Answers = append(out[i].Answers, a)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) CreateAnswer(ctx context.Context, a *models.Answer) (*models.Answer, error) {
	query := `INSERT INTO test_answers (question_id, text, correct) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, a.QuestionID, a.Text, a.Correct).Scan(&a.ID); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}
