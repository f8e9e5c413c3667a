package postgres

import (
	"context"
	"database/sql"
	"errors"

	"undangan/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

// NewSessionRepository returns a domain.SessionRepository implemented with Postgres.
func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (user_id, token_digest, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, s.UserID, s.TokenDigest, s.ExpiresAt, s.CreatedAt).Scan(&s.ID)
}

func (r *sessionRepository) GetByTokenDigest(ctx context.Context, digest string) (*domain.Session, error) {
	query := `
		SELECT id, user_id, token_digest, expires_at, created_at
		FROM sessions
		WHERE token_digest = $1 AND expires_at > NOW()
	`
	s := &domain.Session{}
	err := r.DB.QueryRowContext(ctx, query, digest).Scan(&s.ID, &s.UserID, &s.TokenDigest, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, digest string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token_digest = $1`, digest)
	return err
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	return err
}
