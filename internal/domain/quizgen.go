package domain

import "context"

// QuizGenerator turns extracted markdown text into a quiz. Implementations
// talk to an external LLM provider and are safe for concurrent use. The
// returned quiz carries no ID, owner or timestamps; the caller assigns those
// when (and if) it persists the result.
type QuizGenerator interface {
	GenerateQuestions(ctx context.Context, markdownContent string) (*Quiz, error)
}
