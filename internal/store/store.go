package store

import (
	"context"

	"shrinklink/internal/model"
)

// LinkStore is the persistence contract for link records. Lookups return
// (nil, nil) when no record matches, so callers can distinguish a miss from
// a store failure.
type LinkStore interface {
	Create(ctx context.Context, link *model.Link) error
	GetByID(ctx context.Context, id uint) (*model.Link, error)
	GetByShortCode(ctx context.Context, shortCode string) (*model.Link, error)
	ExistsByShortCode(ctx context.Context, shortCode string) (bool, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	// AddClicks applies an atomic clicks = clicks + n update; callers must
	// never read-modify-write this field.
	AddClicks(ctx context.Context, id uint, n int64) error
	ListByOwner(ctx context.Context, ownerID string, page, size int, groupID *uint, q string) ([]model.Link, int64, error)
	ListByGroup(ctx context.Context, groupID uint) ([]model.Link, error)
	ListAll(ctx context.Context) ([]model.Link, error)
}

// GroupStore is the persistence contract for group records.
type GroupStore interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id uint) (*model.Group, error)
	Delete(ctx context.Context, id uint) error
	ListByOwner(ctx context.Context, ownerID string, page, size int) ([]model.Group, int64, error)
}
