package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"undangan/internal/delivery/http/middleware"
	"undangan/internal/domain"
)

// AdminController serves account verification and deletion. The router gates
// both routes behind the admin role.
type AdminController struct {
	Logger  *slog.Logger
	Service domain.AdminService
}

func NewAdminController(logger *slog.Logger, svc domain.AdminService) *AdminController {
	return &AdminController{Logger: logger, Service: svc}
}

// Verify handles POST /admin/verify.
func (c *AdminController) Verify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	userID := r.PostFormValue("user_id")
	if err := c.Service.VerifyUser(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		http.Error(w, "failed to verify account", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteUser handles POST /admin/delete-user. Deleting the signed-in admin's
// own account is rejected.
func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	userID := r.PostFormValue("user_id")
	if admin, ok := middleware.UserFromContext(r.Context()); ok && admin.ID == userID {
		http.Error(w, "cannot delete your own account", http.StatusBadRequest)
		return
	}
	if err := c.Service.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		http.Error(w, "failed to delete account", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
