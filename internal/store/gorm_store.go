package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shrinklink/internal/model"
)

type gormLinkStore struct {
	db *gorm.DB
}

// NewGormLinkStore returns a LinkStore backed by the given gorm handle.
func NewGormLinkStore(db *gorm.DB) LinkStore {
	return &gormLinkStore{db: db}
}

func (s *gormLinkStore) Create(ctx context.Context, link *model.Link) error {
	return s.db.WithContext(ctx).Create(link).Error
}

func (s *gormLinkStore) GetByID(ctx context.Context, id uint) (*model.Link, error) {
	var link model.Link
	if err := s.db.WithContext(ctx).First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (s *gormLinkStore) GetByShortCode(ctx context.Context, shortCode string) (*model.Link, error) {
	var link model.Link
	if err := s.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (s *gormLinkStore) ExistsByShortCode(ctx context.Context, shortCode string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("short_code = ?", shortCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *gormLinkStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (s *gormLinkStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Link{}, id).Error
}

func (s *gormLinkStore) AddClicks(ctx context.Context, id uint, n int64) error {
	return s.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", n)).Error
}

func (s *gormLinkStore) ListByOwner(ctx context.Context, ownerID string, page, size int, groupID *uint, q string) ([]model.Link, int64, error) {
	db := s.db.WithContext(ctx).Model(&model.Link{}).Where("owner_id = ?", ownerID)
	if groupID != nil {
		db = db.Where("group_id = ?", *groupID)
	}
	if q != "" {
		db = db.Where("short_code LIKE ?", "%"+q+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Link{}, 0, nil
	}

	var links []model.Link
	if err := db.
		Limit(size).
		Offset((page - 1) * size).
		Order("id DESC").
		Find(&links).Error; err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

func (s *gormLinkStore) ListByGroup(ctx context.Context, groupID uint) ([]model.Link, error) {
	var links []model.Link
	if err := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (s *gormLinkStore) ListAll(ctx context.Context) ([]model.Link, error) {
	var links []model.Link
	if err := s.db.WithContext(ctx).Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

type gormGroupStore struct {
	db *gorm.DB
}

// NewGormGroupStore returns a GroupStore backed by the given gorm handle.
func NewGormGroupStore(db *gorm.DB) GroupStore {
	return &gormGroupStore{db: db}
}

func (s *gormGroupStore) Create(ctx context.Context, group *model.Group) error {
	return s.db.WithContext(ctx).Create(group).Error
}

func (s *gormGroupStore) GetByID(ctx context.Context, id uint) (*model.Group, error) {
	var group model.Group
	if err := s.db.WithContext(ctx).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (s *gormGroupStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Group{}, id).Error
}

func (s *gormGroupStore) ListByOwner(ctx context.Context, ownerID string, page, size int) ([]model.Group, int64, error) {
	db := s.db.WithContext(ctx).Model(&model.Group{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Group{}, 0, nil
	}

	var groups []model.Group
	if err := db.
		Limit(size).
		Offset((page - 1) * size).
		Order("id DESC").
		Find(&groups).Error; err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}
