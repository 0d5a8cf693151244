package dto

import (
	"github.com/golang-jwt/jwt/v5"

	"surveygen/internal/domain"
)

// UserRegisterRequest is the body of POST /users/register.
type UserRegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRegisterResponse echoes the created account's public fields.
type UserRegisterResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserLoginRequest is the body of POST /users/login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginResponse carries the signed access token.
type UserLoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// AuthClaims is the JWT payload. The registered subject holds the username;
// the user's primary key travels in the userId claim.
type AuthClaims struct {
	UserID      string   `json:"userId"`
	Authorities []string `json:"authorities"`
	Email       string   `json:"email"`
	jwt.RegisteredClaims
}

// AuthUser is the authenticated identity stored on the request context after
// token validation.
type AuthUser struct {
	ID       string
	Username string
	Email    string
	Roles    []string
}

// ToUserRegisterResponse maps a created user to the register response.
func ToUserRegisterResponse(user *domain.User) *UserRegisterResponse {
	return &UserRegisterResponse{
		Username: user.Username,
		Email:    user.Email,
	}
}
