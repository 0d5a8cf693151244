package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"surveygen/internal/domain"
	"surveygen/internal/repository/models"
)

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository creates a new instance of sqlxQuizRepository.
func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func quizToModel(quiz *domain.Quiz) *models.Quiz {
	questions := make(models.QuestionSlice, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, models.QuestionRecord{
			Question: q.Question,
			Options:  q.Options,
			Answer:   q.Answer,
		})
	}
	return &models.Quiz{
		ID:        quiz.ID,
		UserID:    quiz.UserID,
		Statement: quiz.Statement,
		Questions: questions,
		CreatedAt: quiz.CreatedAt,
		UpdatedAt: quiz.UpdatedAt,
	}
}

func quizToDomain(model *models.Quiz) *domain.Quiz {
	questions := make([]domain.Question, 0, len(model.Questions))
	for _, q := range model.Questions {
		questions = append(questions, domain.Question{
			Question: q.Question,
			Options:  q.Options,
			Answer:   q.Answer,
		})
	}
	return &domain.Quiz{
		ID:        model.ID,
		UserID:    model.UserID,
		Statement: model.Statement,
		Questions: questions,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// SaveQuiz inserts a generated quiz.
func (r *sqlxQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	query := `INSERT INTO quizzes (id, user_id, statement, questions, created_at, updated_at)
	          VALUES (:ID, :USER_ID, :STATEMENT, :QUESTIONS, :CREATED_AT, :UPDATED_AT)`

	if _, err := r.db.NamedExecContext(ctx, query, quizToModel(quiz)); err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// GetQuizzesByUserID returns the user's quizzes, most recent first.
func (r *sqlxQuizRepository) GetQuizzesByUserID(ctx context.Context, userID string) ([]*domain.Quiz, error) {
	var records []models.Quiz
	query := `SELECT * FROM quizzes WHERE user_id = :user_id ORDER BY created_at DESC`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetQuizzesByUserID: %w", err)
	}
	defer stmt.Close()

	if err := stmt.SelectContext(ctx, &records, map[string]interface{}{"user_id": userID}); err != nil {
		return nil, fmt.Errorf("failed to get quizzes by user_id: %w", err)
	}

	quizzes := make([]*domain.Quiz, 0, len(records))
	for i := range records {
		quizzes = append(quizzes, quizToDomain(&records[i]))
	}
	return quizzes, nil
}

// GetQuizByIDAndUserID returns a quiz only when it belongs to the given user.
func (r *sqlxQuizRepository) GetQuizByIDAndUserID(ctx context.Context, quizID, userID string) (*domain.Quiz, error) {
	var model models.Quiz
	query := `SELECT * FROM quizzes WHERE id = :id AND user_id = :user_id`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetQuizByIDAndUserID: %w", err)
	}
	defer stmt.Close()

	args := map[string]interface{}{"id": quizID, "user_id": userID}
	if err := stmt.GetContext(ctx, &model, args); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by id: %w", err)
	}
	return quizToDomain(&model), nil
}
