package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveygen/internal/domain"
	"surveygen/internal/dto"
	"surveygen/internal/middleware"
	"surveygen/internal/service"
)

// ManualMockAuthService implements service.AuthService for middleware tests.
type ManualMockAuthService struct {
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockAuthService) CreateToken(user *domain.User) (string, error) {
	panic("not implemented in mock")
}

func (m *ManualMockAuthService) ValidateToken(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateTokenFunc not set on mock")
}

func validClaims(userID, username string) *dto.AuthClaims {
	return &dto.AuthClaims{
		UserID:      userID,
		Authorities: []string{domain.DefaultRole},
		Email:       username + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		},
	}
}

func newProtectedApp(mockSvc service.AuthService) *fiber.App {
	app := fiber.New()
	app.Get("/secure", middleware.Protected(mockSvc), func(c *fiber.Ctx) error {
		user := middleware.AuthUserFromContext(c)
		return c.JSON(fiber.Map{"userID": user.ID, "username": user.Username})
	})
	return app
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name            string
		authHeader      string
		validateFunc    func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "missing header",
			authHeader:     "",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwdw==",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "empty token",
			authHeader:     "Bearer ",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			validateFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return nil, service.ErrTokenInvalid
			},
			expectedStatus:  fiber.StatusUnauthorized,
			expectedMessage: "Invalid token",
		},
		{
			name:       "expired token",
			authHeader: "Bearer stale-token",
			validateFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return nil, service.ErrTokenExpired
			},
			expectedStatus:  fiber.StatusUnauthorized,
			expectedMessage: "Token has expired",
		},
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			validateFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				assert.Equal(t, "good-token", tokenString)
				return validClaims("user-1", "alice"), nil
			},
			expectedStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newProtectedApp(&ManualMockAuthService{ValidateTokenFunc: tt.validateFunc})

			req := httptest.NewRequest("GET", "/secure", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == fiber.StatusUnauthorized {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)

				var unauthorized middleware.UnauthorizedResponse
				require.NoError(t, json.Unmarshal(body, &unauthorized))
				assert.NotEmpty(t, unauthorized.Message)
				if tt.expectedMessage != "" {
					assert.Equal(t, tt.expectedMessage, unauthorized.Message)
				}

				ts, err := time.Parse(time.RFC3339, unauthorized.Timestamp)
				require.NoError(t, err, "timestamp must be RFC3339")
				assert.WithinDuration(t, time.Now(), ts, time.Minute)
			}
		})
	}
}

func TestProtected_SetsAuthUser(t *testing.T) {
	mockSvc := &ManualMockAuthService{
		ValidateTokenFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
			return validClaims("user-1", "alice"), nil
		},
	}
	app := newProtectedApp(mockSvc)

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user-1", body["userID"])
	assert.Equal(t, "alice", body["username"])
}

func TestOptionalAuth(t *testing.T) {
	tests := []struct {
		name            string
		authHeader      string
		validateFunc    func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
		expectedStatus  int
		expectedUserID  string
		expectedMessage string
	}{
		{
			name:           "no header proceeds anonymously",
			authHeader:     "",
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "wrong scheme proceeds anonymously",
			authHeader:     "Basic some-token",
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "empty bearer token is rejected",
			authHeader:     "Bearer ",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "invalid token is rejected",
			authHeader: "Bearer bad-token",
			validateFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return nil, service.ErrTokenInvalid
			},
			expectedStatus:  fiber.StatusUnauthorized,
			expectedMessage: "Invalid token",
		},
		{
			name:       "expired token is rejected",
			authHeader: "Bearer stale-token",
			validateFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return nil, service.ErrTokenExpired
			},
			expectedStatus:  fiber.StatusUnauthorized,
			expectedMessage: "Token has expired",
		},
		{
			name:       "valid token authenticates",
			authHeader: "Bearer good-token",
			validateFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return validClaims("user-1", "alice"), nil
			},
			expectedStatus: fiber.StatusOK,
			expectedUserID: "user-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &ManualMockAuthService{ValidateTokenFunc: tt.validateFunc}

			app := fiber.New()
			handlerCalled := false
			app.Get("/open", middleware.OptionalAuth(mockSvc), func(c *fiber.Ctx) error {
				handlerCalled = true
				userID := ""
				if user := middleware.AuthUserFromContext(c); user != nil {
					userID = user.ID
				}
				return c.JSON(fiber.Map{"userID": userID})
			})

			req := httptest.NewRequest("GET", "/open", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == fiber.StatusUnauthorized {
				assert.False(t, handlerCalled, "a rejected token must not reach the handler")

				var unauthorized middleware.UnauthorizedResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&unauthorized))
				assert.NotEmpty(t, unauthorized.Message)
				if tt.expectedMessage != "" {
					assert.Equal(t, tt.expectedMessage, unauthorized.Message)
				}
				ts, err := time.Parse(time.RFC3339, unauthorized.Timestamp)
				require.NoError(t, err, "timestamp must be RFC3339")
				assert.WithinDuration(t, time.Now(), ts, time.Minute)
				return
			}

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expectedUserID, body["userID"])
		})
	}
}
