package profile

// UpdateRequest represents a partial profile update. Nil fields are left
// unchanged.
type UpdateRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	Address  *string `json:"address" validate:"omitempty,max=300"`
}

// Response represents a profile in API responses.
type Response struct {
	UserID         string `json:"user_id"`
	FullName       string `json:"full_name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	AvatarThumbURL string `json:"avatar_thumb_url,omitempty"`
	UpdatedAt      string `json:"updated_at"`
}

// AvatarResponse returned after an avatar upload
type AvatarResponse struct {
	AvatarURL      string `json:"avatar_url"`
	AvatarThumbURL string `json:"avatar_thumb_url"`
}
