package repository

import (
	"context"
	"time"

	"github.com/ahmetcinarr/selvigsm/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContentRepository interface {
	FindActiveByKey(ctx context.Context, key string) (*model.SiteContent, error)
	Upsert(ctx context.Context, content *model.SiteContent) error
}

type contentRepoImpl struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepoImpl{
		db: db,
	}
}

func (r *contentRepoImpl) FindActiveByKey(ctx context.Context, key string) (*model.SiteContent, error) {
	var content model.SiteContent
	err := r.db.WithContext(ctx).
		Where("page_key = ? AND is_active = ?", key, true).
		First(&content).Error

	if err != nil {
		return nil, err
	}

	return &content, nil
}

func (r *contentRepoImpl) Upsert(ctx context.Context, content *model.SiteContent) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "page_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"title":            content.Title,
			"content":          content.Content,
			"meta_description": content.MetaDescription,
			"updated_at":       time.Now(),
		}),
	}).Create(content).Error
}
