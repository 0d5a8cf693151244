package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"surveygen/internal/domain"
	"surveygen/internal/dto"
	"surveygen/internal/logger"
	"surveygen/internal/util"
)

// UserService handles account registration and credential login.
type UserService interface {
	Register(ctx context.Context, req *dto.UserRegisterRequest) (*dto.UserRegisterResponse, error)
	Login(ctx context.Context, req *dto.UserLoginRequest) (*dto.UserLoginResponse, error)
}

type userService struct {
	userRepo    domain.UserRepository
	authService AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo domain.UserRepository, authService AuthService) UserService {
	return &userService{
		userRepo:    userRepo,
		authService: authService,
	}
}

// Register creates an account after checking both username and email are
// unused. The password is stored only as a bcrypt hash.
func (s *userService) Register(ctx context.Context, req *dto.UserRegisterRequest) (*dto.UserRegisterResponse, error) {
	if req.Username == "" {
		return nil, domain.NewValidationError("username is required")
	}
	if req.Email == "" {
		return nil, domain.NewValidationError("email is required")
	}
	if req.Password == "" {
		return nil, domain.NewValidationError("password is required")
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, domain.NewInternalError("failed to check username", err)
	}
	if exists {
		return nil, domain.NewConflictError("username is already taken")
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewInternalError("failed to check email", err)
	}
	if exists {
		return nil, domain.NewConflictError("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           util.NewULID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Roles:        []string{domain.DefaultRole},
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, domain.NewInternalError("failed to create user", err)
	}

	logger.Get().Info("User registered", zap.String("userID", user.ID), zap.String("username", user.Username))
	return dto.ToUserRegisterResponse(user), nil
}

// Login verifies the credentials and returns a signed access token. Unknown
// email and wrong password produce the same error so login failures do not
// reveal which accounts exist.
func (s *userService) Login(ctx context.Context, req *dto.UserLoginRequest) (*dto.UserLoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	if user == nil || !user.Active {
		return nil, domain.NewAuthError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.NewAuthError("invalid email or password")
	}

	token, err := s.authService.CreateToken(user)
	if err != nil {
		return nil, domain.NewInternalError("failed to create access token", err)
	}

	logger.Get().Info("User logged in", zap.String("userID", user.ID))
	return &dto.UserLoginResponse{AccessToken: token}, nil
}
