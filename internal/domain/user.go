package domain

import (
	"context"
	"errors"
	"time"
)

// Application roles.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Sentinel errors for user and authentication operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account not verified")
	ErrForbidden          = errors.New("forbidden")
)

// User represents a registered account. Accounts start unverified and cannot
// log in until an admin flips the flag (or the account is the bootstrap admin).
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Salt         string
	Role         string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PasswordHasher handles salted hashing and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (hash, salt string, err error)
	Compare(hash, salt, password string) error
}

// TokenSource mints opaque session tokens and derives the digest stored
// server side. The raw token only ever lives in the client's cookie.
type TokenSource interface {
	New() (token string, err error)
	Digest(token string) string
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, p PaginationParams) ([]*User, error)
	Count(ctx context.Context) (int, error)
	SetVerified(ctx context.Context, id string, verified bool) error
	Delete(ctx context.Context, id string) error
}

// AuthService defines the business logic for registration and session-based
// authentication.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	Logout(ctx context.Context, token string) error
	UserFromToken(ctx context.Context, token string) (*User, error)
}

// AdminService defines account management operations available to admins.
type AdminService interface {
	ListUsers(ctx context.Context, p PaginationParams) (users []*User, total int, err error)
	VerifyUser(ctx context.Context, userID string) error
	DeleteUser(ctx context.Context, userID string) error
}
