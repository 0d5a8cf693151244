package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"surveygen/internal/cache"
	"surveygen/internal/config"
	"surveygen/internal/domain"
	"surveygen/internal/dto"
	"surveygen/internal/logger"
)

// QuizService serves a user's stored quizzes.
type QuizService interface {
	// GetHistory returns the user's quizzes, most recent first.
	GetHistory(ctx context.Context, userID string) ([]dto.QuizHistoryResponse, error)
	// GetQuiz returns one quiz owned by the user. A quiz that does not
	// exist and a quiz owned by someone else are indistinguishable to the
	// caller.
	GetQuiz(ctx context.Context, quizID, userID string) (*dto.QuizResponse, error)
}

type quizService struct {
	quizRepo domain.QuizRepository
	cache    domain.Cache
}

// NewQuizService creates a new QuizService. cache may be nil, in which case
// every read goes to the repository.
func NewQuizService(quizRepo domain.QuizRepository, cacheClient domain.Cache) QuizService {
	return &quizService{
		quizRepo: quizRepo,
		cache:    cacheClient,
	}
}

func (s *quizService) GetHistory(ctx context.Context, userID string) ([]dto.QuizHistoryResponse, error) {
	quizzes, err := s.quizRepo.GetQuizzesByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz history", err)
	}

	history := make([]dto.QuizHistoryResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		history = append(history, dto.ToQuizHistoryResponse(quiz))
	}
	return history, nil
}

func (s *quizService) GetQuiz(ctx context.Context, quizID, userID string) (*dto.QuizResponse, error) {
	log := logger.Get()
	cacheKey := cache.GenerateCacheKey("quiz", "byid", userID, quizID)

	// Quizzes are immutable, so a cached copy never goes stale. Cache
	// failures degrade to a repository read.
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			var response dto.QuizResponse
			if decodeErr := json.Unmarshal([]byte(cached), &response); decodeErr == nil {
				return &response, nil
			} else {
				log.Warn("Failed to decode cached quiz", zap.String("cacheKey", cacheKey), zap.Error(decodeErr))
			}
		} else if err != domain.ErrCacheMiss {
			log.Warn("Cache read failed", zap.String("cacheKey", cacheKey), zap.Error(err))
		}
	}

	quiz, err := s.quizRepo.GetQuizByIDAndUserID(ctx, quizID, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("quiz not found")
	}

	response := dto.ToQuizResponse(quiz)

	if s.cache != nil {
		if data, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), config.QuizCacheTTL); err != nil {
				log.Warn("Cache write failed", zap.String("cacheKey", cacheKey), zap.Error(err))
			}
		}
	}
	return response, nil
}
