package dto

// CreateLinkRequest is the body of POST /api/links. Alias, expirationMonths,
// description and groupId are honored for authenticated owners only.
type CreateLinkRequest struct {
	OriginalURL      string `json:"originalUrl" binding:"required"`
	Alias            string `json:"alias" binding:"omitempty,max=32"`
	ExpirationMonths int    `json:"expirationMonths" binding:"omitempty,oneof=3 6 12"`
	Description      string `json:"description" binding:"omitempty,max=75"`
	GroupID          *uint  `json:"groupId"`
}

// UpdateLinkRequest is the body of PATCH /api/links/:id. Nil fields are
// left untouched.
type UpdateLinkRequest struct {
	OriginalURL *string `json:"originalUrl" binding:"omitempty,max=2048"`
	Description *string `json:"description" binding:"omitempty,max=75"`
	GroupID     *uint   `json:"groupId"`
}

// LinkResponse is the creation payload returned to the caller.
type LinkResponse struct {
	ID          uint   `json:"id"`
	ShortCode   string `json:"shortCode"`
	ShortURL    string `json:"shortUrl"`
	OriginalURL string `json:"originalUrl"`
	Expiration  int64  `json:"expiration"`
}
