package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"surveygen/internal/domain"
	"surveygen/internal/repository/models"
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func userToModel(user *domain.User) *models.User {
	return &models.User{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Roles:        models.StringSlice(user.Roles),
		Active:       user.Active,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func userToDomain(model *models.User) *domain.User {
	return &domain.User{
		ID:           model.ID,
		Username:     model.Username,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Roles:        []string(model.Roles),
		Active:       model.Active,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// CreateUser inserts a new user into the database.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, roles, active, created_at, updated_at)
	          VALUES (:ID, :USERNAME, :EMAIL, :PASSWORD_HASH, :ROLES, :ACTIVE, :CREATED_AT, :UPDATED_AT)`

	if _, err := r.db.NamedExecContext(ctx, query, userToModel(user)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *sqlxUserRepository) getUserBy(ctx context.Context, column string, value string) (*domain.User, error) {
	var model models.User
	query := fmt.Sprintf(`SELECT * FROM users WHERE %s = :value`, column)

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for users.%s: %w", column, err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &model, map[string]interface{}{"value": value})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return userToDomain(&model), nil
}

// GetUserByID retrieves a user by their internal ID.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getUserBy(ctx, "id", userID)
}

// GetUserByUsername retrieves a user by their username.
func (r *sqlxUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUserBy(ctx, "username", username)
}

// GetUserByEmail retrieves a user by their email address.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUserBy(ctx, "email", email)
}

func (r *sqlxUserRepository) existsBy(ctx context.Context, column string, value string) (bool, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM users WHERE %s = :value`, column)

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return false, fmt.Errorf("failed to prepare query for users.%s: %w", column, err)
	}
	defer stmt.Close()

	if err := stmt.GetContext(ctx, &count, map[string]interface{}{"value": value}); err != nil {
		return false, fmt.Errorf("failed to count users by %s: %w", column, err)
	}
	return count > 0, nil
}

// ExistsByUsername reports whether a user with the given username exists.
func (r *sqlxUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.existsBy(ctx, "username", username)
}

// ExistsByEmail reports whether a user with the given email exists.
func (r *sqlxUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.existsBy(ctx, "email", email)
}
