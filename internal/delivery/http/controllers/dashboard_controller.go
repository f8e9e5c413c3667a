package controllers

import (
	"log/slog"
	"net/http"

	"undangan/internal/delivery/http/helpers"
	"undangan/internal/delivery/http/middleware"
	"undangan/internal/delivery/http/views"
	"undangan/internal/domain"
)

type dashboardView struct {
	User        *domain.User
	Invitations []*domain.Invitation
}

type adminPanelView struct {
	User  *domain.User
	Users []*domain.User
	Meta  helpers.PaginationMeta
}

func (v adminPanelView) PrevPage() int { return v.Meta.Page - 1 }
func (v adminPanelView) NextPage() int { return v.Meta.Page + 1 }

// DashboardController serves GET /, which is the auth screen, the member
// dashboard, or the admin panel depending on the session.
type DashboardController struct {
	Logger      *slog.Logger
	Invitations domain.InvitationService
	Admin       domain.AdminService
	Renderer    *views.Renderer
}

func NewDashboardController(logger *slog.Logger, invitations domain.InvitationService, admin domain.AdminService, renderer *views.Renderer) *DashboardController {
	return &DashboardController{
		Logger:      logger,
		Invitations: invitations,
		Admin:       admin,
		Renderer:    renderer,
	}
}

func (c *DashboardController) Home(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		c.Renderer.Render(w, http.StatusOK, "auth.html", authView{})
		return
	}

	if user.IsAdmin() {
		p := helpers.ParsePagination(r)
		users, total, err := c.Admin.ListUsers(r.Context(), p)
		if err != nil {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			http.Error(w, "failed to load accounts", http.StatusInternalServerError)
			return
		}
		c.Renderer.Render(w, http.StatusOK, "admin.html", adminPanelView{
			User:  user,
			Users: users,
			Meta:  helpers.NewPaginationMeta(p.Page, p.PageSize, total),
		})
		return
	}

	invitations, err := c.Invitations.ListByOwner(r.Context(), user.ID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		http.Error(w, "failed to load invitations", http.StatusInternalServerError)
		return
	}
	c.Renderer.Render(w, http.StatusOK, "dashboard.html", dashboardView{
		User:        user,
		Invitations: invitations,
	})
}
