package quizgen

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	openaiLLM "github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	"surveygen/internal/domain"
	"surveygen/internal/logger"
)

// OpenAIQuizGenerator implements domain.QuizGenerator against the OpenAI
// chat completion API via LangchainGo.
type OpenAIQuizGenerator struct {
	llm          *openaiLLM.LLM
	numQuestions int
	numOptions   int
}

// NewOpenAIQuizGenerator creates a new OpenAIQuizGenerator.
func NewOpenAIQuizGenerator(apiKey, modelName string, numQuestions, numOptions int) (domain.QuizGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("openai model name cannot be empty")
	}

	llm, err := openaiLLM.New(
		openaiLLM.WithToken(apiKey),
		openaiLLM.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo OpenAI LLM client: %w", err)
	}

	return &OpenAIQuizGenerator{
		llm:          llm,
		numQuestions: numQuestions,
		numOptions:   numOptions,
	}, nil
}

// GenerateQuestions implements domain.QuizGenerator.
func (g *OpenAIQuizGenerator) GenerateQuestions(ctx context.Context, markdownContent string) (*domain.Quiz, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, buildPrompt(markdownContent, g.numQuestions, g.numOptions)),
	}

	resp, err := g.llm.GenerateContent(ctx, messages,
		llms.WithJSONMode(),
		llms.WithTemperature(0.2),
	)
	if err != nil {
		logger.Get().Error("OpenAI generation call failed", zap.Error(err))
		return nil, domain.NewGenerationError("quiz generation failed", err)
	}
	if len(resp.Choices) == 0 {
		return nil, domain.NewGenerationError("model returned no choices", nil)
	}

	return parseQuizReply(resp.Choices[0].Content)
}
