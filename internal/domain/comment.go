package domain

import (
	"context"
	"time"
)

// Attendance is a guest's stated intention to attend.
type Attendance string

const (
	AttendanceAttending    Attendance = "attending"
	AttendanceNotAttending Attendance = "not_attending"
	AttendanceUndecided    Attendance = "undecided"
)

// ParseAttendance maps a form value to an Attendance, falling back to
// undecided for anything unrecognized.
func ParseAttendance(s string) Attendance {
	switch Attendance(s) {
	case AttendanceAttending, AttendanceNotAttending, AttendanceUndecided:
		return Attendance(s)
	default:
		return AttendanceUndecided
	}
}

// Comment is a guest wish/RSVP left on a public invitation page.
type Comment struct {
	ID           string
	InvitationID string
	GuestName    string
	Message      string
	Attendance   Attendance
	CreatedAt    time.Time
}

// CommentRepository defines the interface for comment storage.
type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByInvitationID(ctx context.Context, invitationID string) ([]*Comment, error)
}

// CommentService defines the business logic for guest comments.
type CommentService interface {
	Add(ctx context.Context, slug, guestName, message string, attendance Attendance) error
}
