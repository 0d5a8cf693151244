package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"surveygen/internal/domain"
)

type quizReply struct {
	Statement string `json:"statement"`
	Questions []struct {
		Question string   `json:"question"`
		Options  []string `json:"options"`
		Answer   string   `json:"answer"`
	} `json:"questions"`
}

// parseQuizReply extracts and validates the quiz JSON from a raw model
// response. Reasoning models wrap output in <think> tags and some wrap JSON
// in prose or code fences, so the JSON object is located by its outermost
// braces rather than parsed directly.
func parseQuizReply(raw string) (*domain.Quiz, error) {
	cleaned := strings.TrimSpace(raw)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
			cleaned = strings.TrimSpace(cleaned)
		}
	}

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return nil, domain.NewGenerationError("no JSON object found in model response", nil)
	}

	var reply quizReply
	if err := json.Unmarshal([]byte(cleaned[jsonStart:jsonEnd+1]), &reply); err != nil {
		return nil, domain.NewGenerationError("failed to parse model response", err)
	}

	quiz := &domain.Quiz{
		Statement: reply.Statement,
		Questions: make([]domain.Question, 0, len(reply.Questions)),
	}
	for _, q := range reply.Questions {
		quiz.Questions = append(quiz.Questions, domain.Question{
			Question: q.Question,
			Options:  q.Options,
			Answer:   q.Answer,
		})
	}

	if err := quiz.Validate(); err != nil {
		return nil, domain.NewGenerationError(fmt.Sprintf("model produced an invalid quiz: %s", err), err)
	}
	return quiz, nil
}
