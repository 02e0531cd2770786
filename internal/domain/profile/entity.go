package profile

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Profile represents guest contact details (matches profiles table, one row
// per user)
type Profile struct {
	UserID         uuid.UUID      `db:"user_id"`
	FullName       sql.NullString `db:"full_name"`
	Phone          sql.NullString `db:"phone"`
	Address        sql.NullString `db:"address"`
	AvatarURL      sql.NullString `db:"avatar_url"`
	AvatarThumbURL sql.NullString `db:"avatar_thumb_url"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// ToResponse converts entity to API response
func (p *Profile) ToResponse() *Response {
	return &Response{
		UserID:         p.UserID.String(),
		FullName:       p.FullName.String,
		Phone:          p.Phone.String,
		Address:        p.Address.String,
		AvatarURL:      p.AvatarURL.String,
		AvatarThumbURL: p.AvatarThumbURL.String,
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
}
