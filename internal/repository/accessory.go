package repository

import (
	"context"

	"github.com/ahmetcinarr/selvigsm/internal/model"
	"gorm.io/gorm"
)

type AccessoryRepository interface {
	ListActive(ctx context.Context) ([]*model.Accessory, error)
	FindActiveByID(ctx context.Context, id uint) (*model.Accessory, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, id uint, qty int) (bool, error)
}

type accessoryRepoImpl struct {
	db *gorm.DB
}

func NewAccessoryRepository(db *gorm.DB) AccessoryRepository {
	return &accessoryRepoImpl{
		db: db,
	}
}

func (r *accessoryRepoImpl) ListActive(ctx context.Context) ([]*model.Accessory, error) {
	var accessories []*model.Accessory
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&accessories).Error

	if err != nil {
		return nil, err
	}

	return accessories, nil
}

func (r *accessoryRepoImpl) FindActiveByID(ctx context.Context, id uint) (*model.Accessory, error) {
	var accessory model.Accessory
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&accessory).Error

	if err != nil {
		return nil, err
	}

	return &accessory, nil
}

func (r *accessoryRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, id uint, qty int) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Accessory{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
