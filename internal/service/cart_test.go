package service

import (
	"context"
	"testing"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/ahmetcinarr/selvigsm/internal/dto"
	"github.com/ahmetcinarr/selvigsm/internal/model"
	"github.com/ahmetcinarr/selvigsm/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCartService(db *gorm.DB) CartService {
	return NewCartService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewAccessoryRepository(db),
	)
}

func cartRows(t *testing.T, db *gorm.DB, userID uint) []*model.CartItem {
	t.Helper()
	var items []*model.CartItem
	require.NoError(t, db.Where("user_id = ?", userID).Find(&items).Error)
	return items
}

func TestCartAddUpsert(t *testing.T) {
	db := newTestDB(t)
	productA, _, _ := seedCatalog(t, db)
	user := seedUser(t, db, "cart@example.com")
	svc := newCartService(db)
	ctx := context.Background()

	// adding the same product k times with qty=1 yields one row with quantity k
	for i := 0; i < 3; i++ {
		err := svc.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 1})
		require.NoError(t, err)
	}

	items := cartRows(t, db, user.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCartAddDefaultsQuantityToOne(t *testing.T) {
	db := newTestDB(t)
	_, _, accessory := seedCatalog(t, db)
	user := seedUser(t, db, "cart@example.com")
	svc := newCartService(db)

	err := svc.Add(context.Background(), user.ID, &dto.AddCartItemRequest{AccessoryID: &accessory.ID})
	require.NoError(t, err)

	items := cartRows(t, db, user.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Nil(t, items[0].ProductID)
}

func TestCartAddRejectsAmbiguousTarget(t *testing.T) {
	db := newTestDB(t)
	productA, _, accessory := seedCatalog(t, db)
	user := seedUser(t, db, "cart@example.com")
	svc := newCartService(db)
	ctx := context.Background()

	err := svc.Add(ctx, user.ID, &dto.AddCartItemRequest{})
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	err = svc.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, AccessoryID: &accessory.ID})
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestCartAddInactiveProductNotFound(t *testing.T) {
	db := newTestDB(t)
	productA, _, _ := seedCatalog(t, db)
	user := seedUser(t, db, "cart@example.com")
	svc := newCartService(db)

	require.NoError(t, db.Model(productA).Update("is_active", false).Error)

	err := svc.Add(context.Background(), user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 1})
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	assert.Empty(t, cartRows(t, db, user.ID))
}

func TestCartSetQuantityZeroRemovesRow(t *testing.T) {
	db := newTestDB(t)
	productA, _, _ := seedCatalog(t, db)
	user := seedUser(t, db, "cart@example.com")
	svc := newCartService(db)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 2}))
	itemID := cartRows(t, db, user.ID)[0].ID

	require.NoError(t, svc.SetQuantity(ctx, user.ID, itemID, 0))
	assert.Empty(t, cartRows(t, db, user.ID))

	// negative quantity behaves the same and stays a success
	require.NoError(t, svc.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 2}))
	itemID = cartRows(t, db, user.ID)[0].ID
	require.NoError(t, svc.SetQuantity(ctx, user.ID, itemID, -3))
	assert.Empty(t, cartRows(t, db, user.ID))
}

func TestCartRemoveIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	user := seedUser(t, db, "cart@example.com")
	svc := newCartService(db)
	ctx := context.Background()

	assert.NoError(t, svc.Remove(ctx, user.ID, 9999))
	assert.NoError(t, svc.Clear(ctx, user.ID))
}

func TestCartScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	productA, _, _ := seedCatalog(t, db)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	svc := newCartService(db)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, owner.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 1}))
	itemID := cartRows(t, db, owner.ID)[0].ID

	// another user cannot remove the owner's row
	require.NoError(t, svc.Remove(ctx, other.ID, itemID))
	assert.Len(t, cartRows(t, db, owner.ID), 1)
}

func TestCartTotalUsesLiveDiscountPrice(t *testing.T) {
	db := newTestDB(t)
	productA, productB, _ := seedCatalog(t, db)
	user := seedUser(t, db, "cart@example.com")
	svc := newCartService(db)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 2}))
	require.NoError(t, svc.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productB.ID, Quantity: 1}))

	// 80*2 + 50*1
	total, err := svc.Total(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("210")), "total = %s", total)

	// price drift while the item sits in the cart is reflected immediately
	require.NoError(t, db.Model(productB).Update("price", dec("60")).Error)
	total, err = svc.Total(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("220")), "total = %s", total)
}

func TestCartListJoinsCatalog(t *testing.T) {
	db := newTestDB(t)
	productA, _, accessory := seedCatalog(t, db)
	user := seedUser(t, db, "cart@example.com")
	svc := newCartService(db)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 2}))
	require.NoError(t, svc.Add(ctx, user.ID, &dto.AddCartItemRequest{AccessoryID: &accessory.ID, Quantity: 1}))

	lines, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "Product A", lines[0].Name)
	assert.Equal(t, "product-a", lines[0].Slug)
	assert.True(t, lines[0].LineTotal.Equal(dec("160")))

	assert.Equal(t, "Charger", lines[1].Name)
	assert.True(t, lines[1].LineTotal.Equal(dec("25")))
}

func TestCartSurvivesDanglingRow(t *testing.T) {
	// a row whose catalog entry vanished out from under it must not
	// take the whole cart down
	db := newTestDB(t)
	productA, productB, _ := seedCatalog(t, db)
	user := seedUser(t, db, "shopper@example.com")
	svc := newCartService(db)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 1}))
	require.NoError(t, svc.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productB.ID, Quantity: 1}))

	// delete the product behind the repository's back, leaving the row
	require.NoError(t, db.Delete(&model.Product{}, productA.ID).Error)

	lines, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, &productB.ID, lines[0].ProductID)

	total, err := svc.Total(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(total))
}
