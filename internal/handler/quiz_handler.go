package handler

import (
	"github.com/gofiber/fiber/v2"

	"surveygen/internal/domain"
	"surveygen/internal/middleware"
	"surveygen/internal/service"
)

// QuizHandler serves a user's stored quizzes.
type QuizHandler struct {
	quizService service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GetHistory godoc
// @Summary List the authenticated user's quizzes
// @Tags quizzes
// @Produce json
// @Success 200 {array} dto.QuizHistoryResponse
// @Failure 401 {object} middleware.UnauthorizedResponse
// @Router /quizzes/history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	user := middleware.AuthUserFromContext(c)
	if user == nil {
		return domain.NewAuthError("authentication required")
	}

	history, err := h.quizService.GetHistory(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(history)
}

// GetQuiz godoc
// @Summary Get one of the authenticated user's quizzes
// @Tags quizzes
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 401 {object} middleware.UnauthorizedResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{quizId} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	user := middleware.AuthUserFromContext(c)
	if user == nil {
		return domain.NewAuthError("authentication required")
	}

	quizID := c.Params("quizId")
	if quizID == "" {
		return domain.NewValidationError("quiz id is required")
	}

	quiz, err := h.quizService.GetQuiz(c.Context(), quizID, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}
