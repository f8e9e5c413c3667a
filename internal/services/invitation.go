package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"undangan/internal/domain"
)

type invitationService struct {
	invitationRepo domain.InvitationRepository
	commentRepo    domain.CommentRepository
	store          domain.ObjectStore
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewInvitationService creates an InvitationService. Uploaded images go to the
// object store; the store may be nil in tests that never upload.
func NewInvitationService(
	invitationRepo domain.InvitationRepository,
	commentRepo domain.CommentRepository,
	store domain.ObjectStore,
	logger *slog.Logger,
	timeout time.Duration,
) domain.InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		commentRepo:    commentRepo,
		store:          store,
		logger:         logger,
		contextTimeout: timeout,
	}
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)
	unsafeSlugChars     = regexp.MustCompile(`[^a-z0-9-]+`)
	dashRuns            = regexp.MustCompile(`-{2,}`)
)

func (s *invitationService) Create(ctx context.Context, in *domain.NewInvitation) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.OwnerID == "" {
		return nil, domain.Validationf("invitation owner is required")
	}
	if strings.TrimSpace(in.GroomName) == "" || strings.TrimSpace(in.BrideName) == "" {
		return nil, domain.Validationf("couple names are required")
	}

	slug, err := s.resolveSlug(in)
	if err != nil {
		return nil, err
	}

	// Uploads happen before the insert; keys are tracked so they can be
	// compensated if the insert fails.
	var uploadedKeys []string
	uploadOne := func(img *domain.ImageUpload) string {
		if img == nil {
			return ""
		}
		key := objectKey(img.Filename)
		url, err := s.store.Put(ctx, key, img.ContentType, img.Data, img.Size)
		if err != nil {
			s.logger.Warn("image upload failed, skipping", "key", key, "err", err)
			return ""
		}
		uploadedKeys = append(uploadedKeys, key)
		return url
	}

	groomPhotoURL := uploadOne(in.GroomPhoto)
	bridePhotoURL := uploadOne(in.BridePhoto)

	gallery := make([]string, 0, domain.MaxGalleryPhotos)
	for i, img := range in.Gallery {
		if i >= domain.MaxGalleryPhotos {
			break
		}
		if url := uploadOne(img); url != "" {
			gallery = append(gallery, url)
		}
	}

	// Entries without a title are dropped; order is preserved, gaps removed.
	story := make([]domain.LoveStoryEntry, 0, domain.MaxLoveStoryEntries)
	for _, entry := range in.LoveStory {
		if len(story) >= domain.MaxLoveStoryEntries {
			break
		}
		if strings.TrimSpace(entry.Title) == "" {
			continue
		}
		story = append(story, entry)
	}

	now := time.Now()
	inv := &domain.Invitation{
		Slug:          slug,
		UserID:        in.OwnerID,
		GroomName:     strings.TrimSpace(in.GroomName),
		GroomNick:     strings.TrimSpace(in.GroomNick),
		BrideName:     strings.TrimSpace(in.BrideName),
		BrideNick:     strings.TrimSpace(in.BrideNick),
		GroomPhotoURL: groomPhotoURL,
		BridePhotoURL: bridePhotoURL,
		EventDate:     in.EventDate,
		Location:      strings.TrimSpace(in.Location),
		Message:       strings.TrimSpace(in.Message),
		LoveStory:     story,
		Gallery:       gallery,
		BankName:      strings.TrimSpace(in.BankName),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		AccountHolder: strings.TrimSpace(in.AccountHolder),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		s.deleteObjects(ctx, uploadedKeys)
		if errors.Is(err, domain.ErrDuplicateSlug) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}
	return inv, nil
}

func (s *invitationService) GetBySlug(ctx context.Context, slug string) (*domain.Invitation, []*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrInvitationNotFound) {
			return nil, nil, domain.ErrInvitationNotFound
		}
		return nil, nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	comments, err := s.commentRepo.ListByInvitationID(ctx, inv.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list comments: %w", err)
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}
	return inv, comments, nil
}

func (s *invitationService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invitations, err := s.invitationRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	if invitations == nil {
		invitations = []*domain.Invitation{}
	}
	return invitations, nil
}

func (s *invitationService) Delete(ctx context.Context, invitationID, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrInvitationNotFound) {
			return domain.ErrInvitationNotFound
		}
		return fmt.Errorf("failed to get invitation: %w", err)
	}
	if inv.UserID != ownerID {
		return domain.ErrForbidden
	}
	if err := s.invitationRepo.DeleteByIDAndOwner(ctx, invitationID, ownerID); err != nil {
		if errors.Is(err, domain.ErrInvitationNotFound) {
			return domain.ErrInvitationNotFound
		}
		return fmt.Errorf("failed to delete invitation: %w", err)
	}

	// Comments go with the row by cascade; stored images are cleaned here.
	var keys []string
	for _, url := range append([]string{inv.GroomPhotoURL, inv.BridePhotoURL}, inv.Gallery...) {
		if url == "" {
			continue
		}
		if key, ok := s.store.KeyFromURL(url); ok {
			keys = append(keys, key)
		}
	}
	s.deleteObjects(ctx, keys)
	return nil
}

func (s *invitationService) deleteObjects(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("object cleanup failed", "key", key, "err", err)
		}
	}
}

func (s *invitationService) resolveSlug(in *domain.NewInvitation) (string, error) {
	if custom := sanitizeSlug(in.Slug); custom != "" {
		return custom, nil
	}
	base := sanitizeSlug(in.GroomNick + "-" + in.BrideNick)
	if base == "" {
		base = sanitizeSlug(in.GroomName + "-" + in.BrideName)
	}
	if base == "" {
		base = "undangan"
	}
	suffix, err := randomSlugSuffix()
	if err != nil {
		return "", fmt.Errorf("generate slug: %w", err)
	}
	return base + "-" + suffix, nil
}

func sanitizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = unsafeSlugChars.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

const slugSuffixLength = 4

var slugAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

func randomSlugSuffix() (string, error) {
	b := make([]rune, slugSuffixLength)
	max := big.NewInt(int64(len(slugAlphabet)))
	for i := 0; i < slugSuffixLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = slugAlphabet[n.Int64()]
	}
	return string(b), nil
}

// objectKey builds a collision-resistant storage key from the upload time,
// the sanitized original filename, and a short random suffix.
func objectKey(filename string) string {
	clean := unsafeFilenameChars.ReplaceAllString(filename, "_")
	if clean == "" || clean == "_" {
		clean = "image"
	}
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString()[:8], clean)
}
