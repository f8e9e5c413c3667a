package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"undangan/internal/domain"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo     domain.UserRepository
	sessionRepo  domain.SessionRepository
	hasher       domain.PasswordHasher
	tokens       domain.TokenSource
	emailService domain.EmailService
	sessionTTL   time.Duration
	adminEmail   string
}

// NewAuthService creates an AuthService backed by server-side sessions.
// Registering with adminEmail yields a verified admin account.
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenSource,
	emailService domain.EmailService,
	sessionTTL time.Duration,
	adminEmail string,
) domain.AuthService {
	return &authService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		hasher:       hasher,
		tokens:       tokens,
		emailService: emailService,
		sessionTTL:   sessionTTL,
		adminEmail:   strings.TrimSpace(strings.ToLower(adminEmail)),
	}
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, domain.Validationf("invalid email format")
	}
	if len(password) < minPasswordLen {
		return nil, domain.Validationf("password must be at least %d characters", minPasswordLen)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("name is required")
	}

	hash, salt, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Salt:         salt,
		Role:         domain.RoleMember,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if s.adminEmail != "" && email == s.adminEmail {
		user.Role = domain.RoleAdmin
		user.Verified = true
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeEmailData{Email: user.Email, Name: user.Name}
		if err := s.emailService.SendWelcome(ctx, data); err != nil {
			log.Printf("[AUTH] welcome email for %s failed: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.Verified {
		return "", nil, domain.ErrNotVerified
	}

	token, err := s.tokens.New()
	if err != nil {
		return "", nil, fmt.Errorf("failed to mint session token: %w", err)
	}

	// Expired rows are invisible to lookups; sweeping them on login keeps
	// the sessions table bounded. Best-effort.
	if err := s.sessionRepo.DeleteExpired(ctx); err != nil {
		log.Printf("[AUTH] expired session sweep failed: %v", err)
	}

	now := time.Now()
	session := &domain.Session{
		UserID:      user.ID,
		TokenDigest: s.tokens.Digest(token),
		ExpiresAt:   now.Add(s.sessionTTL),
		CreatedAt:   now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}
	return token, user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, s.tokens.Digest(token)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *authService) UserFromToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}
	session, err := s.sessionRepo.GetByTokenDigest(ctx, s.tokens.Digest(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
