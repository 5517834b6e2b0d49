package account

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// Role determines which scopes a user's tokens carry
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleEmployer  Role = "employer"
)

// IsValid checks that the role is one of the accepted values
func (r Role) IsValid() bool {
	switch r {
	case RoleApplicant, RoleEmployer:
		return true
	}
	return false
}

type User struct {
	ID           kernel.UserID    `db:"id" json:"id"`
	Username     kernel.Username  `db:"username" json:"username"`
	Email        kernel.Email     `db:"email" json:"email"`
	PasswordHash string           `db:"password_hash" json:"-"`
	FirstName    kernel.FirstName `db:"first_name" json:"first_name,omitempty"`
	LastName     kernel.LastName  `db:"last_name" json:"last_name,omitempty"`
	Role         Role             `db:"role" json:"role"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// FullName joins first and last name, falling back to the username
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName.String() + " " + u.LastName.String())
	if name == "" {
		return u.Username.String()
	}
	return name
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// CheckPassword verifies a password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Validate checks the fields required to create the user
func (u *User) Validate() error {
	if u.Username.IsEmpty() {
		return ErrValidationFailed().WithDetail("field", "username")
	}
	if !u.Email.IsValid() {
		return ErrValidationFailed().WithDetail("field", "email")
	}
	if !u.Role.IsValid() {
		return ErrValidationFailed().WithDetail("field", "role")
	}
	return nil
}
