package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"undangan/internal/domain"
)

type adminService struct {
	userRepo          domain.UserRepository
	sessionRepo       domain.SessionRepository
	invitationService domain.InvitationService
	emailService      domain.EmailService
	contextTimeout    time.Duration
}

// NewAdminService creates an AdminService. User deletion routes each owned
// invitation through the InvitationService so stored images are cleaned up.
func NewAdminService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	invitationService domain.InvitationService,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.AdminService {
	return &adminService{
		userRepo:          userRepo,
		sessionRepo:       sessionRepo,
		invitationService: invitationService,
		emailService:      emailService,
		contextTimeout:    timeout,
	}
}

func (s *adminService) ListUsers(ctx context.Context, p domain.PaginationParams) ([]*domain.User, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	users, err := s.userRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	return users, total, nil
}

func (s *adminService) VerifyUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user.Verified {
		return nil
	}
	if err := s.userRepo.SetVerified(ctx, userID, true); err != nil {
		return fmt.Errorf("failed to verify user: %w", err)
	}
	if s.emailService != nil {
		data := &domain.AccountVerifiedEmailData{Email: user.Email, Name: user.Name}
		if err := s.emailService.SendAccountVerified(ctx, data); err != nil {
			log.Printf("[ADMIN] account verified email for %s failed: %v", user.Email, err)
		}
	}
	return nil
}

func (s *adminService) DeleteUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	// Invitations first, each through the service so comments cascade and
	// stored objects get cleaned; then sessions; then the user row.
	invitations, err := s.invitationService.ListByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list invitations: %w", err)
	}
	for _, inv := range invitations {
		if err := s.invitationService.Delete(ctx, inv.ID, userID); err != nil {
			return fmt.Errorf("failed to delete invitation %s: %w", inv.ID, err)
		}
	}
	if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
