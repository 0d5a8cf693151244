package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"surveygen/internal/domain"
	"surveygen/internal/dto"
	"surveygen/internal/validation"
)

func newDocumentService(generator *MockQuizGenerator, quizRepo *MockQuizRepository) DocumentService {
	return NewDocumentService(generator, quizRepo, validation.NewDocumentValidator([]string{".md"}))
}

func generatedQuiz(statement string) *domain.Quiz {
	return &domain.Quiz{
		Statement: statement,
		Questions: []domain.Question{
			{Question: "q1", Options: []string{"a", "b"}, Answer: "a"},
		},
	}
}

func TestDocumentService_AnonymousUploadNotPersisted(t *testing.T) {
	generator := new(MockQuizGenerator)
	quizRepo := new(MockQuizRepository)
	svc := newDocumentService(generator, quizRepo)

	generator.On("GenerateQuestions", mock.Anything, "# Notes").Return(generatedQuiz("Notes"), nil)

	responses, err := svc.GenerateQuizzes(context.Background(), []dto.UploadedDocument{
		{Filename: "notes.md", Content: "# Notes"},
	}, "")

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "Notes", responses[0].Statement)
	quizRepo.AssertNotCalled(t, "SaveQuiz", mock.Anything, mock.Anything)
}

func TestDocumentService_AuthenticatedUploadPersisted(t *testing.T) {
	generator := new(MockQuizGenerator)
	quizRepo := new(MockQuizRepository)
	svc := newDocumentService(generator, quizRepo)

	generator.On("GenerateQuestions", mock.Anything, "# Notes").Return(generatedQuiz("Notes"), nil)

	var saved *domain.Quiz
	quizRepo.On("SaveQuiz", mock.Anything, mock.AnythingOfType("*domain.Quiz")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Quiz)
		}).
		Return(nil)

	_, err := svc.GenerateQuizzes(context.Background(), []dto.UploadedDocument{
		{Filename: "notes.md", Content: "# Notes"},
	}, "user-1")

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "user-1", saved.UserID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.False(t, saved.UpdatedAt.IsZero())
}

func TestDocumentService_ResponseOrderMatchesUploadOrder(t *testing.T) {
	generator := new(MockQuizGenerator)
	quizRepo := new(MockQuizRepository)
	svc := newDocumentService(generator, quizRepo)

	generator.On("GenerateQuestions", mock.Anything, "first").Return(generatedQuiz("First"), nil)
	generator.On("GenerateQuestions", mock.Anything, "second").Return(generatedQuiz("Second"), nil)
	generator.On("GenerateQuestions", mock.Anything, "third").Return(generatedQuiz("Third"), nil)

	responses, err := svc.GenerateQuizzes(context.Background(), []dto.UploadedDocument{
		{Filename: "1.md", Content: "first"},
		{Filename: "2.md", Content: "second"},
		{Filename: "3.md", Content: "third"},
	}, "")

	require.NoError(t, err)
	require.Len(t, responses, 3)
	assert.Equal(t, "First", responses[0].Statement)
	assert.Equal(t, "Second", responses[1].Statement)
	assert.Equal(t, "Third", responses[2].Statement)
}

func TestDocumentService_ValidationShortCircuitsGeneration(t *testing.T) {
	generator := new(MockQuizGenerator)
	quizRepo := new(MockQuizRepository)
	svc := newDocumentService(generator, quizRepo)

	tests := []struct {
		name    string
		doc     dto.UploadedDocument
		message string
	}{
		{"wrong extension", dto.UploadedDocument{Filename: "notes.txt", Content: "text"}, "Only .md files are allowed"},
		{"empty filename", dto.UploadedDocument{Filename: "", Content: "text"}, "Filename cannot be empty"},
		{"empty content", dto.UploadedDocument{Filename: "notes.md", Content: "   "}, "Uploaded file is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GenerateQuizzes(context.Background(), []dto.UploadedDocument{tt.doc}, "")
			var domainErr *domain.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domain.CodeValidation, domainErr.Code)
			assert.Equal(t, tt.message, domainErr.Message)
		})
	}

	_, err := svc.GenerateQuizzes(context.Background(), nil, "")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "No files found in request", domainErr.Message)

	generator.AssertNotCalled(t, "GenerateQuestions", mock.Anything, mock.Anything)
}

func TestDocumentService_GenerationFailureFailsBatch(t *testing.T) {
	generator := new(MockQuizGenerator)
	quizRepo := new(MockQuizRepository)
	svc := newDocumentService(generator, quizRepo)

	genErr := domain.NewGenerationError("quiz generation failed", nil)
	generator.On("GenerateQuestions", mock.Anything, "good").Return(generatedQuiz("Good"), nil).Maybe()
	generator.On("GenerateQuestions", mock.Anything, "bad").Return(nil, genErr)

	_, err := svc.GenerateQuizzes(context.Background(), []dto.UploadedDocument{
		{Filename: "good.md", Content: "good"},
		{Filename: "bad.md", Content: "bad"},
	}, "user-1")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeGeneration, domainErr.Code)
	quizRepo.AssertNotCalled(t, "SaveQuiz", mock.Anything, mock.Anything)
}
