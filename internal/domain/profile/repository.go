package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines profile data access
type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL, thumbURL string) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new profile repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// GetByUserID returns a user's profile
func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	query := `SELECT * FROM profiles WHERE user_id = $1`
	var p Profile
	err := r.db.GetContext(ctx, &p, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Upsert inserts or updates the profile row for a user
func (r *repository) Upsert(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (user_id, full_name, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
		    phone = EXCLUDED.phone,
		    address = EXCLUDED.address,
		    updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, p.UserID, p.FullName, p.Phone, p.Address)
	if err != nil {
		return fmt.Errorf("profile repository upsert: %w", err)
	}
	return nil
}

// UpdateAvatar stores the new avatar URLs, creating the row if needed
func (r *repository) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL, thumbURL string) error {
	query := `
		INSERT INTO profiles (user_id, avatar_url, avatar_thumb_url, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET avatar_url = EXCLUDED.avatar_url,
		    avatar_thumb_url = EXCLUDED.avatar_thumb_url,
		    updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, userID, avatarURL, thumbURL)
	if err != nil {
		return fmt.Errorf("profile repository update avatar: %w", err)
	}
	return nil
}
