package questions

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestListQuestions_FoldsAnswers(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	cols := []string{"id", "lesson_id", "text", "points", "aid", "atext", "correct"}
	mock.ExpectQuery(`FROM test_questions q\s+LEFT JOIN test_answers a`).
		WithArgs("l1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("q1", "l1", "2+2?", 1, "a1", "4", true).
			AddRow("q1", "l1", "2+2?", 1, "a2", "5", false).
			AddRow("q2", "l1", "empty", 2, nil, nil, nil))

	list, err := repo.ListQuestions(context.Background(), "l1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Len(t, list[0].Answers, 2)
	assert.True(t, list[0].Answers[0].Correct)
	assert.Equal(t, "q1", list[0].Answers[1].QuestionID)
	assert.NotNil(t, list[1].Answers)
	assert.Empty(t, list[1].Answers)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateQuestion(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`INSERT INTO test_questions`).
		WithArgs("l1", "why?", 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("q1"))

	q, err := repo.CreateQuestion(context.Background(), &models.Question{LessonID: "l1", Text: "why?", Points: 3})
	require.NoError(t, err)
	assert.Equal(t, "q1", q.ID)
}

func TestCreateAnswer_UnknownQuestion(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`INSERT INTO test_answers`).
		WithArgs("nope", "x", false).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.CreateAnswer(context.Background(), &models.Answer{QuestionID: "nope", Text: "x"})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	q1, err := r.CreateQuestion(ctx, &models.Question{LessonID: "l1", Text: "a"})
	require.NoError(t, err)
	_, err = r.CreateQuestion(ctx, &models.Question{LessonID: "l2", Text: "b"})
	require.NoError(t, err)

	_, err = r.CreateAnswer(ctx, &models.Answer{QuestionID: q1.ID, Text: "yes", Correct: true})
	require.NoError(t, err)
	_, err = r.CreateAnswer(ctx, &models.Answer{QuestionID: "missing"})
	require.ErrorIs(t, err, common.ErrorNotFound)

	l1, err := r.ListQuestions(ctx, "l1")
	require.NoError(t, err)
	require.Len(t, l1, 1)
	require.Len(t, l1[0].Answers, 1)

	all, _ := r.ListQuestions(ctx, "")
	assert.Len(t, all, 2)
}
