package repository

import (
	"context"
	"time"

	"github.com/ahmetcinarr/selvigsm/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	// AddProduct and AddAccessory upsert in a single statement: an
	// existing (user, item) row has its quantity incremented, otherwise
	// a new row is inserted.
	AddProduct(ctx context.Context, userID, productID uint, qty int) error
	AddAccessory(ctx context.Context, userID, accessoryID uint, qty int) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*model.CartItem, error)
	SetQuantity(ctx context.Context, userID, itemID uint, qty int) error
	Delete(ctx context.Context, userID, itemID uint) error
	Clear(ctx context.Context, tx *gorm.DB, userID uint) error
	// DeleteByProduct removes the product's rows from every cart; run
	// before the product itself is deleted so no ledger row dangles.
	DeleteByProduct(ctx context.Context, productID uint) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) AddProduct(ctx context.Context, userID, productID uint, qty int) error {
	item := &model.CartItem{
		UserID:    userID,
		ProductID: &productID,
		Quantity:  qty,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", qty),
			"updated_at": time.Now(),
		}),
	}).Create(&item).Error
}

func (r *cartRepoImpl) AddAccessory(ctx context.Context, userID, accessoryID uint, qty int) error {
	item := &model.CartItem{
		UserID:      userID,
		AccessoryID: &accessoryID,
		Quantity:    qty,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "accessory_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", qty),
			"updated_at": time.Now(),
		}),
	}).Create(&item).Error
}

// ListByUser reads the user's ledger rows with their catalog entries.
// Pass tx when the read must observe an open transaction.
func (r *cartRepoImpl) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*model.CartItem, error) {
	db := r.db
	if tx != nil {
		db = tx
	}

	var items []*model.CartItem
	err := db.WithContext(ctx).
		Preload("Product").
		Preload("Accessory").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) SetQuantity(ctx context.Context, userID, itemID uint, qty int) error {
	return r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Updates(map[string]interface{}{
			"quantity":   qty,
			"updated_at": time.Now(),
		}).Error
}

// Delete is idempotent: removing an absent row is a no-op.
func (r *cartRepoImpl) Delete(ctx context.Context, userID, itemID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) DeleteByProduct(ctx context.Context, productID uint) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) Clear(ctx context.Context, tx *gorm.DB, userID uint) error {
	db := r.db
	if tx != nil {
		db = tx
	}

	return db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
