package domain

import (
	"context"
	"time"
)

// Question is a single multiple-choice question. Questions have no identity of
// their own; they live and die with their quiz.
type Question struct {
	Question string
	Options  []string
	Answer   string
}

// Validate checks the question invariants: at least two options, and the
// answer must be value-equal to exactly one of them.
func (q *Question) Validate() error {
	if q.Question == "" {
		return NewValidationError("question text is required")
	}
	if len(q.Options) < 2 {
		return NewValidationError("a question requires at least two options")
	}
	matches := 0
	for _, opt := range q.Options {
		if opt == q.Answer {
			matches++
		}
	}
	if matches != 1 {
		return NewValidationError("answer must match exactly one option")
	}
	return nil
}

// Quiz is a generated assessment. UserID is empty for anonymous generations,
// which are never persisted. A quiz is immutable once created.
type Quiz struct {
	ID        string
	UserID    string
	Statement string
	Questions []Question
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if q.Statement == "" {
		return NewValidationError("statement is required")
	}
	if len(q.Questions) == 0 {
		return NewValidationError("at least one question is required")
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// QuizRepository defines the interface for quiz persistence.
// Lookups return (nil, nil) when no matching quiz exists.
type QuizRepository interface {
	SaveQuiz(ctx context.Context, quiz *Quiz) error
	GetQuizzesByUserID(ctx context.Context, userID string) ([]*Quiz, error)
	GetQuizByIDAndUserID(ctx context.Context, quizID, userID string) (*Quiz, error)
}
