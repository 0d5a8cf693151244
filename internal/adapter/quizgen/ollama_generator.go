package quizgen

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/llms"
	ollamaLLM "github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"

	"surveygen/internal/domain"
	"surveygen/internal/logger"
)

// OllamaQuizGenerator implements domain.QuizGenerator against a local Ollama
// server via LangchainGo.
type OllamaQuizGenerator struct {
	llm          *ollamaLLM.LLM
	numQuestions int
	numOptions   int
}

// NewOllamaQuizGenerator creates a new OllamaQuizGenerator.
// Local models can be slow on long documents, so the HTTP client carries a
// generous timeout.
func NewOllamaQuizGenerator(serverURL, modelName string, numQuestions, numOptions int) (domain.QuizGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	llm, err := ollamaLLM.New(
		ollamaLLM.WithServerURL(serverURL),
		ollamaLLM.WithModel(modelName),
		ollamaLLM.WithHTTPClient(&http.Client{Timeout: 120 * time.Second}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo Ollama LLM client: %w", err)
	}

	return &OllamaQuizGenerator{
		llm:          llm,
		numQuestions: numQuestions,
		numOptions:   numOptions,
	}, nil
}

// GenerateQuestions implements domain.QuizGenerator.
func (g *OllamaQuizGenerator) GenerateQuestions(ctx context.Context, markdownContent string) (*domain.Quiz, error) {
	prompt := systemPrompt + "\n\n" + buildPrompt(markdownContent, g.numQuestions, g.numOptions)

	raw, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithTemperature(0.2),
	)
	if err != nil {
		logger.Get().Error("Ollama generation call failed", zap.Error(err))
		return nil, domain.NewGenerationError("quiz generation failed", err)
	}

	return parseQuizReply(raw)
}
