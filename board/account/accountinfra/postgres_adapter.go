package accountinfra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Ejeanjules/capstone-project/board/account"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// PostgresAccountRepository implements account.Repository using PostgreSQL
type PostgresAccountRepository struct {
	db *sqlx.DB
}

// NewPostgresAccountRepository creates a new PostgreSQL account repository
func NewPostgresAccountRepository(db *sqlx.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type userModel struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *userModel) toEntity() *account.User {
	return &account.User{
		ID:           kernel.UserID(m.ID),
		Username:     kernel.Username(m.Username),
		Email:        kernel.Email(m.Email),
		PasswordHash: m.PasswordHash,
		FirstName:    kernel.FirstName(m.FirstName),
		LastName:     kernel.LastName(m.LastName),
		Role:         account.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(u *account.User) *userModel {
	return &userModel{
		ID:           string(u.ID),
		Username:     string(u.Username),
		Email:        string(u.Email),
		PasswordHash: u.PasswordHash,
		FirstName:    string(u.FirstName),
		LastName:     string(u.LastName),
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

const userColumns = `
	id, username, email, password_hash, first_name, last_name, role,
	created_at, updated_at
`

// Create creates a new user
func (r *PostgresAccountRepository) Create(ctx context.Context, user *account.User) error {
	model := fromEntity(user)

	query := `
		INSERT INTO users (
			id, username, email, password_hash, first_name, last_name, role,
			created_at, updated_at
		) VALUES (
			:id, :username, :email, :password_hash, :first_name, :last_name, :role,
			:created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			if strings.Contains(pqErr.Constraint, "email") {
				return account.ErrEmailTaken()
			}
			return account.ErrUsernameTaken()
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresAccountRepository) GetByID(ctx context.Context, id kernel.UserID) (*account.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var model userModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return model.toEntity(), nil
}

// GetByUsername retrieves a user by username
func (r *PostgresAccountRepository) GetByUsername(ctx context.Context, username kernel.Username) (*account.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	var model userModel
	err := r.db.GetContext(ctx, &model, query, string(username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return model.toEntity(), nil
}

// GetByEmail retrieves a user by email
func (r *PostgresAccountRepository) GetByEmail(ctx context.Context, email kernel.Email) (*account.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var model userModel
	err := r.db.GetContext(ctx, &model, query, string(email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return model.toEntity(), nil
}

// ExistsByUsername checks whether a username is taken
func (r *PostgresAccountRepository) ExistsByUsername(ctx context.Context, username kernel.Username) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, string(username))
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// ExistsByEmail checks whether an email is registered
func (r *PostgresAccountRepository) ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, string(email))
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}
