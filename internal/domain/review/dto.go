package review

// CreateRequest for creating a review
type CreateRequest struct {
	RoomID  string `json:"room_id" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ListResponse is a paginated review listing
type ListResponse struct {
	Reviews []*Response `json:"reviews"`
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
}
