package dto

import (
	"time"

	"surveygen/internal/domain"
)

// UploadedDocument is one markdown file after extraction, handed from the
// upload handler to the document service.
type UploadedDocument struct {
	Filename string
	Content  string
}

// QuestionOptions carries the option list and the answer, which must be one
// of the options.
type QuestionOptions struct {
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

// QuestionResponse is one multiple-choice question in a quiz response.
type QuestionResponse struct {
	Question string          `json:"question"`
	Options  QuestionOptions `json:"options"`
}

// QuizResponse is the full quiz shape returned by generation and by
// GET /quizzes/{quizId}.
type QuizResponse struct {
	Statement string             `json:"statement"`
	Questions []QuestionResponse `json:"questions"`
}

// QuizHistoryResponse is the reduced shape returned by GET /quizzes/history.
type QuizHistoryResponse struct {
	ID        string    `json:"id"`
	Statement string    `json:"statement"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToQuizResponse maps a domain quiz to its response shape.
func ToQuizResponse(quiz *domain.Quiz) *QuizResponse {
	questions := make([]QuestionResponse, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, QuestionResponse{
			Question: q.Question,
			Options: QuestionOptions{
				Options: q.Options,
				Answer:  q.Answer,
			},
		})
	}
	return &QuizResponse{
		Statement: quiz.Statement,
		Questions: questions,
	}
}

// ToQuizHistoryResponse reduces a domain quiz to its history entry.
func ToQuizHistoryResponse(quiz *domain.Quiz) QuizHistoryResponse {
	return QuizHistoryResponse{
		ID:        quiz.ID,
		Statement: quiz.Statement,
		CreatedAt: quiz.CreatedAt,
	}
}
