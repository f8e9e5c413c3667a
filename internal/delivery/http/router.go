package http

import (
	"net/http"

	"undangan/internal/delivery/http/controllers"
	"undangan/internal/delivery/http/middleware"
	"undangan/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	authService domain.AuthService,
	dashboard *controllers.DashboardController,
	auth *controllers.AuthController,
	invitation *controllers.InvitationController,
	public *controllers.PublicController,
	admin *controllers.AdminController,
) *http.ServeMux {
	mux := http.NewServeMux()

	withUser := middleware.WithUser(authService)
	requireUser := middleware.RequireUser(authService)
	requireAdmin := middleware.RequireAdmin(authService)

	// Dashboard / auth screen / admin panel
	mux.HandleFunc("GET /{$}", withUser(dashboard.Home))

	// Auth
	mux.HandleFunc("POST /login", auth.Login)
	mux.HandleFunc("POST /register", auth.Register)
	mux.HandleFunc("GET /logout", auth.Logout)

	// Invitation composer
	mux.HandleFunc("GET /create", requireUser(invitation.ShowCreate))
	mux.HandleFunc("POST /create", requireUser(invitation.Create))
	mux.HandleFunc("POST /delete-invitation", requireUser(invitation.Delete))

	// Public guest pages
	mux.HandleFunc("GET /u/{slug}", public.View)
	mux.HandleFunc("POST /u/{slug}/comment", public.AddComment)

	// Admin account management
	mux.HandleFunc("POST /admin/verify", requireAdmin(admin.Verify))
	mux.HandleFunc("POST /admin/delete-user", requireAdmin(admin.DeleteUser))

	return mux
}
