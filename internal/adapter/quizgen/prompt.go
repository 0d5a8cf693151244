package quizgen

import (
	"fmt"
)

const systemPrompt = `You are an expert quiz generator. You read study material and produce multiple-choice quizzes that test understanding of its key points. You respond with JSON only, no prose before or after.`

const formatInstructions = `Respond with ONLY a single JSON object in the following format:
{
  "statement": "a short title summarizing the material",
  "questions": [
    {
      "question": "the question text",
      "options": ["option 1", "option 2", "option 3"],
      "answer": "the correct option, copied verbatim from options"
    }
  ]
}`

// buildPrompt assembles the user prompt for one document. The answer of every
// question must be copied verbatim from its options so the result can be
// validated mechanically.
func buildPrompt(document string, numQuestions, numOptions int) string {
	return fmt.Sprintf(`%s

Create exactly %d questions from the material below. Each question must have exactly %d options, and "answer" must be one of them, character for character.

Material:
%s`, formatInstructions, numQuestions, numOptions, document)
}
