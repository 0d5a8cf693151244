package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"surveygen/internal/dto"
	"surveygen/internal/logger"
	"surveygen/internal/service"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	AuthUserKey         = "authUser" // Key for storing *dto.AuthUser in fiber.Ctx locals
)

// UnauthorizedResponse is the body returned when authentication fails.
type UnauthorizedResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(UnauthorizedResponse{
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func tokenFailureMessage(err error) string {
	if errors.Is(err, service.ErrTokenExpired) {
		return "Token has expired"
	}
	return "Invalid token"
}

// AuthUserFromContext returns the authenticated user set by Protected or
// OptionalAuth, or nil for anonymous requests.
func AuthUserFromContext(c *fiber.Ctx) *dto.AuthUser {
	user, _ := c.Locals(AuthUserKey).(*dto.AuthUser)
	return user
}

// Protected requires a valid bearer token. On success the authenticated user
// is stored in the request locals.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return unauthorized(c, "Authorization header is missing")
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return unauthorized(c, "Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return unauthorized(c, "Token is empty")
		}

		claims, err := authService.ValidateToken(c.Context(), tokenString)
		if err != nil {
			return unauthorized(c, tokenFailureMessage(err))
		}

		c.Locals(AuthUserKey, authUserFromClaims(claims))
		return c.Next()
	}
}

// OptionalAuth lets requests without credentials through anonymously, but a
// request that does present a bearer token must carry a valid one; a token
// that fails verification is rejected with 401 rather than silently
// downgraded to anonymous. An identity already set by an earlier middleware
// is never overwritten.
func OptionalAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if AuthUserFromContext(c) != nil {
			return c.Next()
		}

		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return unauthorized(c, "Token is empty")
		}

		claims, err := authService.ValidateToken(c.Context(), tokenString)
		if err != nil {
			logger.Get().Warn("Bearer token rejected", zap.Error(err))
			return unauthorized(c, tokenFailureMessage(err))
		}

		c.Locals(AuthUserKey, authUserFromClaims(claims))
		return c.Next()
	}
}

func authUserFromClaims(claims *dto.AuthClaims) *dto.AuthUser {
	return &dto.AuthUser{
		ID:       claims.UserID,
		Username: claims.Subject,
		Email:    claims.Email,
		Roles:    claims.Authorities,
	}
}
