package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"surveygen/internal/domain"
	"surveygen/internal/dto"
	"surveygen/internal/logger"
	"surveygen/internal/util"
	"surveygen/internal/validation"
)

// DocumentService turns uploaded markdown documents into quizzes.
type DocumentService interface {
	// GenerateQuizzes generates one quiz per document, in input order.
	// userID is empty for anonymous uploads, which are not persisted.
	GenerateQuizzes(ctx context.Context, docs []dto.UploadedDocument, userID string) ([]*dto.QuizResponse, error)
}

type documentService struct {
	generator domain.QuizGenerator
	quizRepo  domain.QuizRepository
	validator *validation.DocumentValidator
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(generator domain.QuizGenerator, quizRepo domain.QuizRepository, validator *validation.DocumentValidator) DocumentService {
	return &documentService{
		generator: generator,
		quizRepo:  quizRepo,
		validator: validator,
	}
}

func (s *documentService) GenerateQuizzes(ctx context.Context, docs []dto.UploadedDocument, userID string) ([]*dto.QuizResponse, error) {
	if len(docs) == 0 {
		return nil, domain.NewValidationError("No files found in request")
	}

	// All documents are validated up front so no generation call is spent
	// on a batch that would fail anyway.
	for _, doc := range docs {
		if err := s.validator.ValidateDocument(doc); err != nil {
			return nil, err
		}
	}

	log := logger.Get()

	// Documents are generated concurrently. Each goroutine writes to its
	// own slot so the response order matches the upload order.
	quizzes := make([]*domain.Quiz, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			quiz, err := s.generator.GenerateQuestions(gctx, doc.Content)
			if err != nil {
				log.Error("Quiz generation failed",
					zap.String("filename", doc.Filename),
					zap.Error(err),
				)
				return err
			}
			quizzes[i] = quiz
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	responses := make([]*dto.QuizResponse, 0, len(quizzes))
	for i, quiz := range quizzes {
		if userID != "" {
			now := time.Now()
			quiz.ID = util.NewULID()
			quiz.UserID = userID
			quiz.CreatedAt = now
			quiz.UpdatedAt = now
			if err := s.quizRepo.SaveQuiz(ctx, quiz); err != nil {
				return nil, domain.NewInternalError("failed to save quiz", err)
			}
		}
		log.Info("Quiz generated",
			zap.String("filename", docs[i].Filename),
			zap.String("quizID", quiz.ID),
			zap.Bool("persisted", userID != ""),
		)
		responses = append(responses, dto.ToQuizResponse(quiz))
	}
	return responses, nil
}
