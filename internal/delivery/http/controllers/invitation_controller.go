package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"undangan/internal/delivery/http/middleware"
	"undangan/internal/delivery/http/views"
	"undangan/internal/domain"
)

// maxUploadMemory caps the in-memory portion of multipart parsing; larger
// file parts spill to temp files.
const maxUploadMemory = 10 << 20

type createView struct {
	User  *domain.User
	Error string
}

func (createView) StorySlots() []int {
	return slots(domain.MaxLoveStoryEntries)
}

func (createView) GallerySlots() []int {
	return slots(domain.MaxGalleryPhotos)
}

func slots(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// InvitationController serves the composer form and owner-gated deletion.
type InvitationController struct {
	Logger   *slog.Logger
	Service  domain.InvitationService
	Renderer *views.Renderer
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService, renderer *views.Renderer) *InvitationController {
	return &InvitationController{
		Logger:   logger,
		Service:  svc,
		Renderer: renderer,
	}
}

// ShowCreate handles GET /create.
func (c *InvitationController) ShowCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	c.Renderer.Render(w, http.StatusOK, "create.html", createView{User: user})
}

// Create handles POST /create: upload present images, assemble the love
// story, persist one invitation row.
func (c *InvitationController) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		c.Renderer.Render(w, http.StatusOK, "create.html", createView{User: user, Error: "Invalid form submission."})
		return
	}

	in := &domain.NewInvitation{
		OwnerID:       user.ID,
		Slug:          r.PostFormValue("slug"),
		GroomName:     r.PostFormValue("groom_name"),
		GroomNick:     r.PostFormValue("groom_nick"),
		BrideName:     r.PostFormValue("bride_name"),
		BrideNick:     r.PostFormValue("bride_nick"),
		Location:      r.PostFormValue("location"),
		Message:       r.PostFormValue("message"),
		BankName:      r.PostFormValue("bank_name"),
		AccountNumber: r.PostFormValue("account_number"),
		AccountHolder: r.PostFormValue("account_holder"),
	}

	if s := r.PostFormValue("event_date"); s != "" {
		date, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.Renderer.Render(w, http.StatusOK, "create.html", createView{User: user, Error: "Invalid event date."})
			return
		}
		in.EventDate = date
	}

	// Indexed love-story fields; entries with an empty title are dropped by
	// the service, so the list closes over gaps in the form.
	for i := 1; i <= domain.MaxLoveStoryEntries; i++ {
		in.LoveStory = append(in.LoveStory, domain.LoveStoryEntry{
			Year:    r.PostFormValue(fmt.Sprintf("story_year_%d", i)),
			Title:   r.PostFormValue(fmt.Sprintf("story_title_%d", i)),
			Content: r.PostFormValue(fmt.Sprintf("story_content_%d", i)),
		})
	}

	var openFiles []multipart.File
	defer func() {
		for _, f := range openFiles {
			f.Close()
		}
	}()
	openUpload := func(field string) *domain.ImageUpload {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			return nil
		}
		hdr := headers[0]
		f, err := hdr.Open()
		if err != nil {
			c.Logger.WarnContext(r.Context(), "failed to open upload", "field", field, "err", err)
			return nil
		}
		openFiles = append(openFiles, f)
		return &domain.ImageUpload{
			Filename:    hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Size:        hdr.Size,
			Data:        f,
		}
	}

	in.GroomPhoto = openUpload("groom_photo")
	in.BridePhoto = openUpload("bride_photo")
	for i := 1; i <= domain.MaxGalleryPhotos; i++ {
		if img := openUpload(fmt.Sprintf("gallery_%d", i)); img != nil {
			in.Gallery = append(in.Gallery, img)
		}
	}

	if _, err := c.Service.Create(r.Context(), in); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) {
			c.Renderer.Render(w, http.StatusOK, "create.html", createView{User: user, Error: "That link is already taken. Pick another one."})
			return
		}
		if isValidationError(err) {
			c.Renderer.Render(w, http.StatusOK, "create.html", createView{User: user, Error: err.Error()})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		c.Renderer.Render(w, http.StatusOK, "create.html", createView{User: user, Error: "Failed to create the invitation. Please try again."})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete handles POST /delete-invitation. Ownership comes from the session,
// never from the form.
func (c *InvitationController) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	invitationID := r.PostFormValue("invitation_id")
	if err := c.Service.Delete(r.Context(), invitationID, user.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvitationNotFound), errors.Is(err, domain.ErrForbidden):
			c.Logger.WarnContext(r.Context(), "delete rejected", "invitation_id", invitationID, "user_id", user.ID, "err", err)
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
