package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"undangan/internal/domain"
)

type commentService struct {
	invitationRepo domain.InvitationRepository
	commentRepo    domain.CommentRepository
	contextTimeout time.Duration
}

// NewCommentService creates a CommentService for guest wishes and RSVPs.
func NewCommentService(invitationRepo domain.InvitationRepository, commentRepo domain.CommentRepository, timeout time.Duration) domain.CommentService {
	return &commentService{
		invitationRepo: invitationRepo,
		commentRepo:    commentRepo,
		contextTimeout: timeout,
	}
}

func (s *commentService) Add(ctx context.Context, slug, guestName, message string, attendance domain.Attendance) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	guestName = strings.TrimSpace(guestName)
	if guestName == "" {
		return domain.Validationf("guest name is required")
	}

	inv, err := s.invitationRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrInvitationNotFound) {
			return domain.ErrInvitationNotFound
		}
		return fmt.Errorf("failed to get invitation: %w", err)
	}

	comment := &domain.Comment{
		InvitationID: inv.ID,
		GuestName:    guestName,
		Message:      strings.TrimSpace(message),
		Attendance:   attendance,
		CreatedAt:    time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		// The invitation can vanish between the lookup and the insert;
		// the foreign key turns that race into ErrInvitationNotFound.
		if errors.Is(err, domain.ErrInvitationNotFound) {
			return domain.ErrInvitationNotFound
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}
