package domain

import (
	"context"
	"errors"
	"io"
	"time"
)

// Sentinel errors for invitation operations.
var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrDuplicateSlug      = errors.New("slug already in use")
)

// Upper bounds enforced server side, matching the composer form.
const (
	MaxGalleryPhotos    = 4
	MaxLoveStoryEntries = 3
)

// LoveStoryEntry is one dated anecdote on the invitation's timeline.
type LoveStoryEntry struct {
	Year    string `json:"year"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Invitation is the published wedding-details record a user creates and
// shares at /u/{slug}.
type Invitation struct {
	ID            string
	Slug          string
	UserID        string
	GroomName     string
	GroomNick     string
	BrideName     string
	BrideNick     string
	GroomPhotoURL string
	BridePhotoURL string
	EventDate     time.Time
	Location      string
	Message       string
	LoveStory     []LoveStoryEntry
	Gallery       []string
	BankName      string
	AccountNumber string
	AccountHolder string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ImageUpload is one image file received from the composer form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// NewInvitation carries the composer form input for Create. Photo fields are
// nil when the corresponding file input was left empty.
type NewInvitation struct {
	OwnerID       string
	Slug          string
	GroomName     string
	GroomNick     string
	BrideName     string
	BrideNick     string
	EventDate     time.Time
	Location      string
	Message       string
	LoveStory     []LoveStoryEntry
	BankName      string
	AccountNumber string
	AccountHolder string
	GroomPhoto    *ImageUpload
	BridePhoto    *ImageUpload
	Gallery       []*ImageUpload
}

// InvitationRepository defines the interface for invitation storage.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id string) (*Invitation, error)
	GetBySlug(ctx context.Context, slug string) (*Invitation, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Invitation, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
}

// InvitationService defines the business logic for composing, viewing, and
// deleting invitations.
type InvitationService interface {
	Create(ctx context.Context, in *NewInvitation) (*Invitation, error)
	GetBySlug(ctx context.Context, slug string) (*Invitation, []*Comment, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Invitation, error)
	Delete(ctx context.Context, invitationID, ownerID string) error
}
