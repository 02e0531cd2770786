package profile

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pinehaven/pinehaven-api/internal/pkg/imaging"
	"github.com/pinehaven/pinehaven-api/internal/pkg/storage"
)

// Service handles profile business logic
type Service struct {
	repo      Repository
	storage   storage.Storage
	processor *imaging.Processor
}

// NewService creates profile service
func NewService(repo Repository, store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{repo: repo, storage: store, processor: processor}
}

// Get returns the user's profile. An account that never filled anything in
// gets an empty profile, not a 404.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Response, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &Profile{UserID: userID, UpdatedAt: time.Now()}
	}
	return p.ToResponse(), nil
}

// Update applies a partial update to the user's contact details
func (s *Service) Update(ctx context.Context, userID uuid.UUID, req *UpdateRequest) (*Response, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &Profile{UserID: userID}
	}

	if req.FullName != nil {
		p.FullName = sql.NullString{String: *req.FullName, Valid: *req.FullName != ""}
	}
	if req.Phone != nil {
		p.Phone = sql.NullString{String: *req.Phone, Valid: *req.Phone != ""}
	}
	if req.Address != nil {
		p.Address = sql.NullString{String: *req.Address, Valid: *req.Address != ""}
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	p.UpdatedAt = time.Now()
	return p.ToResponse(), nil
}

// UploadAvatar validates, resizes, and stores a new avatar image. The old
// avatar files are deleted on success.
func (s *Service) UploadAvatar(ctx context.Context, userID uuid.UUID, file io.Reader) (*AvatarResponse, error) {
	buf, _, err := storage.ValidateImage(file, storage.MaxAvatarSize)
	if err != nil {
		return nil, err
	}

	processed, err := s.processor.Process(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}

	ext := storage.ExtensionForMime(processed.ContentType)
	id := uuid.New().String()
	avatarKey := fmt.Sprintf("avatars/%s/%s%s", userID, id, ext)
	thumbKey := fmt.Sprintf("avatars/%s/%s_thumb%s", userID, id, ext)

	if err := s.storage.Put(ctx, avatarKey, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
		return nil, err
	}
	if err := s.storage.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
		// Avoid an avatar with a dead thumbnail
		_ = s.storage.Delete(ctx, avatarKey)
		return nil, err
	}

	old, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	avatarURL := s.storage.GetURL(avatarKey)
	thumbURL := s.storage.GetURL(thumbKey)
	if err := s.repo.UpdateAvatar(ctx, userID, avatarURL, thumbURL); err != nil {
		return nil, err
	}

	// Old files are cosmetic cleanup; failures are logged, not surfaced.
	if old != nil && old.AvatarURL.Valid {
		if err := s.storage.Delete(ctx, s.keyFromURL(old.AvatarURL.String)); err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to delete old avatar")
		}
		if old.AvatarThumbURL.Valid {
			_ = s.storage.Delete(ctx, s.keyFromURL(old.AvatarThumbURL.String))
		}
	}

	log.Info().
		Str("user_id", userID.String()).
		Int("width", processed.Width).
		Int("height", processed.Height).
		Msg("Avatar uploaded")

	return &AvatarResponse{
		AvatarURL:      avatarURL,
		AvatarThumbURL: thumbURL,
	}, nil
}

// keyFromURL recovers the storage key from a stored public URL.
func (s *Service) keyFromURL(url string) string {
	return strings.TrimPrefix(url, s.storage.GetURL(""))
}
