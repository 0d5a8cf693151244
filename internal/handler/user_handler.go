package handler

import (
	"github.com/gofiber/fiber/v2"

	"surveygen/internal/domain"
	"surveygen/internal/dto"
	"surveygen/internal/service"
)

// UserHandler handles registration and login requests.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterRequest true "Registration Request"
// @Success 200 {object} dto.UserRegisterResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /users/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.userService.Register(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Login godoc
// @Summary Log in with username and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UserLoginRequest true "Login Request"
// @Success 200 {object} dto.UserLoginResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.userService.Login(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
