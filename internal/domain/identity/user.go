package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// Password cost for bcrypt
const bcryptCost = 12

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,49}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// User is an authenticated principal. Non-admin users are bound to at
// most one clinic; a user without a clinic cannot touch clinic-scoped
// resources at all.
type User struct {
	shared.BaseAggregateRoot
	Username     string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email        string         `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string         `gorm:"type:varchar(100);not null"`
	FirstName    string         `gorm:"type:varchar(100)"`
	LastName     string         `gorm:"type:varchar(100)"`
	Phone        string         `gorm:"type:varchar(50)"`
	Role         isolation.Role `gorm:"type:varchar(20);not null;default:'staff'"`
	ClinicID     *uuid.UUID     `gorm:"type:uuid;index"`
	Status       UserStatus     `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with a hashed password
func NewUser(username, email, password string, role isolation.Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username must be 3-50 characters of lowercase letters, digits, dots, hyphens or underscores")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if !role.Valid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown user role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
		Status:            UserStatusActive,
	}, nil
}

// AssignToClinic binds the user to a clinic
func (u *User) AssignToClinic(clinicID uuid.UUID) {
	u.ClinicID = &clinicID
	u.Touch()
	u.IncrementVersion()
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsActive reports whether the user may authenticate
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// RecordLogin stores the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.Touch()
}

// AccessContext derives the request access context for this principal.
// The clinic binding comes from the stored record, not from any
// client-supplied value.
func (u *User) AccessContext() isolation.AccessContext {
	return isolation.AccessContext{
		UserID:   u.ID,
		Role:     u.Role,
		ClinicID: u.ClinicID,
	}
}
