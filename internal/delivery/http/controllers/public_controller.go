package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"undangan/internal/delivery/http/views"
	"undangan/internal/domain"
)

type inviteView struct {
	Invitation *domain.Invitation
	Comments   []*domain.Comment
}

// PublicController serves the guest-facing invitation page and the comment
// form. No authentication: any holder of the link can view and post.
type PublicController struct {
	Logger      *slog.Logger
	Invitations domain.InvitationService
	Comments    domain.CommentService
	Renderer    *views.Renderer
}

func NewPublicController(logger *slog.Logger, invitations domain.InvitationService, comments domain.CommentService, renderer *views.Renderer) *PublicController {
	return &PublicController{
		Logger:      logger,
		Invitations: invitations,
		Comments:    comments,
		Renderer:    renderer,
	}
}

// View handles GET /u/{slug}.
func (c *PublicController) View(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	invitation, comments, err := c.Invitations.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrInvitationNotFound) {
			c.Renderer.Render(w, http.StatusNotFound, "not_found.html", nil)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		http.Error(w, "failed to load invitation", http.StatusInternalServerError)
		return
	}
	c.Renderer.Render(w, http.StatusOK, "invite.html", inviteView{
		Invitation: invitation,
		Comments:   comments,
	})
}

// AddComment handles POST /u/{slug}/comment and redirects back to the wishes
// section of the public page.
func (c *PublicController) AddComment(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/u/"+slug+"#wishes", http.StatusSeeOther)
		return
	}

	err := c.Comments.Add(
		r.Context(),
		slug,
		r.PostFormValue("guest_name"),
		r.PostFormValue("message"),
		domain.ParseAttendance(r.PostFormValue("attendance")),
	)
	if err != nil {
		if errors.Is(err, domain.ErrInvitationNotFound) {
			c.Renderer.Render(w, http.StatusNotFound, "not_found.html", nil)
			return
		}
		if isValidationError(err) {
			http.Redirect(w, r, "/u/"+slug+"#wishes", http.StatusSeeOther)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		http.Error(w, "failed to submit comment", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/u/"+slug+"#wishes", http.StatusSeeOther)
}
