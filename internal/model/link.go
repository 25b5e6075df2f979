package model

import "time"

type Link struct {
	BaseModel
	ShortCode   string `gorm:"uniqueIndex;size:32;not null" json:"shortCode"`
	OriginalURL string `gorm:"size:2048;not null" json:"originalUrl"`
	Clicks      int64  `gorm:"default:0" json:"clicks"`
	Expiration  int64  `gorm:"index" json:"expiration"` // unix seconds, expired once now >= expiration
	Description string `gorm:"size:75" json:"description,omitempty"`
	GroupID     *uint  `gorm:"index" json:"groupId,omitempty"`
	OwnerID     string `gorm:"index;size:128" json:"-"` // empty for guest links
}

// Expired reports whether the link is past its expiration at the given time.
// Equal-to-expiration counts as expired.
func (l *Link) Expired(now time.Time) bool {
	return l.Expiration != 0 && now.Unix() >= l.Expiration
}
