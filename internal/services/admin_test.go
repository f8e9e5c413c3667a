package services

import (
	"context"
	"testing"
	"time"

	"undangan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInvitationManager implements domain.InvitationService and records deletes.
type fakeInvitationManager struct {
	byOwner map[string][]*domain.Invitation
	deleted []string
}

func newFakeInvitationManager() *fakeInvitationManager {
	return &fakeInvitationManager{byOwner: make(map[string][]*domain.Invitation)}
}

func (f *fakeInvitationManager) Create(ctx context.Context, in *domain.NewInvitation) (*domain.Invitation, error) {
	return nil, nil
}

func (f *fakeInvitationManager) GetBySlug(ctx context.Context, slug string) (*domain.Invitation, []*domain.Comment, error) {
	return nil, nil, domain.ErrInvitationNotFound
}

func (f *fakeInvitationManager) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Invitation, error) {
	return f.byOwner[ownerID], nil
}

func (f *fakeInvitationManager) Delete(ctx context.Context, invitationID, ownerID string) error {
	f.deleted = append(f.deleted, invitationID)
	return nil
}

func newAdminServiceForTest(userRepo *fakeUserRepo, sessions *fakeSessionRepo, invitations *fakeInvitationManager, emails *fakeEmailSender) domain.AdminService {
	return NewAdminService(userRepo, sessions, invitations, emails, time.Hour)
}

func TestAdminService_ListUsers(t *testing.T) {
	ctx := context.Background()

	userRepo := newFakeUserRepo()
	userRepo.add(&domain.User{ID: "user-1", Email: "alice@example.com"})
	userRepo.add(&domain.User{ID: "user-2", Email: "bob@example.com"})
	svc := newAdminServiceForTest(userRepo, newFakeSessionRepo(), newFakeInvitationManager(), &fakeEmailSender{})

	users, total, err := svc.ListUsers(ctx, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 2, total)
}

func TestAdminService_VerifyUser(t *testing.T) {
	ctx := context.Background()

	t.Run("verifies and notifies the user", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.add(&domain.User{ID: "user-1", Email: "alice@example.com", Name: "Alice"})
		emails := &fakeEmailSender{}
		svc := newAdminServiceForTest(userRepo, newFakeSessionRepo(), newFakeInvitationManager(), emails)

		require.NoError(t, svc.VerifyUser(ctx, "user-1"))
		assert.True(t, userRepo.byID["user-1"].Verified)
		assert.Equal(t, []string{"alice@example.com"}, emails.verified)
	})

	t.Run("already verified is a no-op without email", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.add(&domain.User{ID: "user-1", Email: "alice@example.com", Verified: true})
		emails := &fakeEmailSender{}
		svc := newAdminServiceForTest(userRepo, newFakeSessionRepo(), newFakeInvitationManager(), emails)

		require.NoError(t, svc.VerifyUser(ctx, "user-1"))
		assert.Empty(t, emails.verified)
		assert.Empty(t, userRepo.verified)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newAdminServiceForTest(newFakeUserRepo(), newFakeSessionRepo(), newFakeInvitationManager(), &fakeEmailSender{})
		require.ErrorIs(t, svc.VerifyUser(ctx, "user-404"), domain.ErrUserNotFound)
	})
}

func TestAdminService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes invitations, sessions, then the user", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.add(&domain.User{ID: "user-1", Email: "alice@example.com"})
		sessions := newFakeSessionRepo()
		sessions.byDigest["digest-1"] = &domain.Session{ID: "session-1", UserID: "user-1", TokenDigest: "digest-1", ExpiresAt: time.Now().Add(time.Hour)}
		invitations := newFakeInvitationManager()
		invitations.byOwner["user-1"] = []*domain.Invitation{
			{ID: "inv-1", UserID: "user-1"},
			{ID: "inv-2", UserID: "user-1"},
		}
		svc := newAdminServiceForTest(userRepo, sessions, invitations, &fakeEmailSender{})

		require.NoError(t, svc.DeleteUser(ctx, "user-1"))
		assert.ElementsMatch(t, []string{"inv-1", "inv-2"}, invitations.deleted)
		assert.Empty(t, sessions.byDigest)
		assert.Equal(t, []string{"user-1"}, userRepo.deleted)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newAdminServiceForTest(newFakeUserRepo(), newFakeSessionRepo(), newFakeInvitationManager(), &fakeEmailSender{})
		require.ErrorIs(t, svc.DeleteUser(ctx, "user-404"), domain.ErrUserNotFound)
	})
}
