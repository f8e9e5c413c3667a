package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"undangan/internal/domain"
)

const foreignKeyViolation = "23503"

type commentRepository struct {
	DB *sql.DB
}

func NewCommentRepository(db *sql.DB) domain.CommentRepository {
	return &commentRepository{DB: db}
}

func (r *commentRepository) Create(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO comments (invitation_id, guest_name, message, attendance, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, c.InvitationID, c.GuestName, c.Message, string(c.Attendance), c.CreatedAt).Scan(&c.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return domain.ErrInvitationNotFound
		}
		return err
	}
	return nil
}

func (r *commentRepository) ListByInvitationID(ctx context.Context, invitationID string) ([]*domain.Comment, error) {
	query := `
		SELECT id, invitation_id, guest_name, message, attendance, created_at
		FROM comments
		WHERE invitation_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, invitationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		c := &domain.Comment{}
		var attendance string
		if err := rows.Scan(&c.ID, &c.InvitationID, &c.GuestName, &c.Message, &attendance, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Attendance = domain.Attendance(attendance)
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
