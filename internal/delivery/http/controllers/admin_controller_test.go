package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"undangan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminController_Verify(t *testing.T) {
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}

	t.Run("verifies and redirects home", func(t *testing.T) {
		svc := &fakeAdminService{}
		controller := NewAdminController(testLogger(), svc)

		req := withUser(postForm("/admin/verify", url.Values{"user_id": {"user-2"}}), admin)
		rec := httptest.NewRecorder()
		controller.Verify(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, []string{"user-2"}, svc.verified)
	})

	t.Run("unknown user still redirects", func(t *testing.T) {
		svc := &fakeAdminService{verifyErr: domain.ErrUserNotFound}
		controller := NewAdminController(testLogger(), svc)

		req := withUser(postForm("/admin/verify", url.Values{"user_id": {"user-404"}}), admin)
		rec := httptest.NewRecorder()
		controller.Verify(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
	})
}

func TestAdminController_DeleteUser(t *testing.T) {
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}

	t.Run("deletes another account", func(t *testing.T) {
		svc := &fakeAdminService{}
		controller := NewAdminController(testLogger(), svc)

		req := withUser(postForm("/admin/delete-user", url.Values{"user_id": {"user-2"}}), admin)
		rec := httptest.NewRecorder()
		controller.DeleteUser(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, []string{"user-2"}, svc.deleted)
	})

	t.Run("self-delete is rejected", func(t *testing.T) {
		svc := &fakeAdminService{}
		controller := NewAdminController(testLogger(), svc)

		req := withUser(postForm("/admin/delete-user", url.Values{"user_id": {"admin-1"}}), admin)
		rec := httptest.NewRecorder()
		controller.DeleteUser(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.deleted)
	})
}
