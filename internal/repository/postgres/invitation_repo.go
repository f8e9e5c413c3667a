package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"undangan/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{DB: db}
}

const invitationColumns = `
	id, slug, user_id, groom_name, groom_nick, bride_name, bride_nick,
	groom_photo_url, bride_photo_url, event_date, location, message,
	love_story, gallery, bank_name, account_number, account_holder,
	created_at, updated_at`

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	story, err := json.Marshal(inv.LoveStory)
	if err != nil {
		return fmt.Errorf("marshal love story: %w", err)
	}
	query := `
		INSERT INTO invitations (
			slug, user_id, groom_name, groom_nick, bride_name, bride_nick,
			groom_photo_url, bride_photo_url, event_date, location, message,
			love_story, gallery, bank_name, account_number, account_holder,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`
	err = r.DB.QueryRowContext(ctx, query,
		inv.Slug, inv.UserID, inv.GroomName, inv.GroomNick, inv.BrideName, inv.BrideNick,
		nullString(inv.GroomPhotoURL), nullString(inv.BridePhotoURL), nullTime(inv.EventDate),
		inv.Location, inv.Message, story, pq.Array(inv.Gallery),
		inv.BankName, inv.AccountNumber, inv.AccountHolder,
		inv.CreatedAt, inv.UpdatedAt,
	).Scan(&inv.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `SELECT` + invitationColumns + `
		FROM invitations
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *invitationRepository) GetBySlug(ctx context.Context, slug string) (*domain.Invitation, error) {
	query := `SELECT` + invitationColumns + `
		FROM invitations
		WHERE slug = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *invitationRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Invitation, error) {
	query := `SELECT` + invitationColumns + `
		FROM invitations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	invitations := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

func (r *invitationRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM invitations WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvitationNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *invitationRepository) scanOne(row rowScanner) (*domain.Invitation, error) {
	inv, err := scanInvitation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, err
	}
	return inv, nil
}

func scanInvitation(row rowScanner) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var groomPhoto, bridePhoto sql.NullString
	var eventDate sql.NullTime
	var story []byte
	err := row.Scan(
		&inv.ID, &inv.Slug, &inv.UserID, &inv.GroomName, &inv.GroomNick,
		&inv.BrideName, &inv.BrideNick, &groomPhoto, &bridePhoto,
		&eventDate, &inv.Location, &inv.Message,
		&story, pq.Array(&inv.Gallery),
		&inv.BankName, &inv.AccountNumber, &inv.AccountHolder,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.GroomPhotoURL = groomPhoto.String
	inv.BridePhotoURL = bridePhoto.String
	if eventDate.Valid {
		inv.EventDate = eventDate.Time
	}
	inv.LoveStory = []domain.LoveStoryEntry{}
	if len(story) > 0 {
		if err := json.Unmarshal(story, &inv.LoveStory); err != nil {
			return nil, fmt.Errorf("unmarshal love story: %w", err)
		}
	}
	if inv.Gallery == nil {
		inv.Gallery = []string{}
	}
	return inv, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
