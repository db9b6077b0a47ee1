package service

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/ahmetcinarr/selvigsm/internal/dto"
	"github.com/ahmetcinarr/selvigsm/internal/model"
	"github.com/ahmetcinarr/selvigsm/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) OrderService {
	return NewOrderService(
		db,
		repository.NewCartRepository(db),
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewAccessoryRepository(db),
	)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	user := seedUser(t, db, "buyer@example.com")
	svc := newOrderService(db)

	_, err := svc.Checkout(context.Background(), user.ID)
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutMaterializesCart(t *testing.T) {
	db := newTestDB(t)
	productA, productB, _ := seedCatalog(t, db)
	user := seedUser(t, db, "buyer@example.com")
	carts := newCartService(db)
	orders := newOrderService(db)
	ctx := context.Background()

	require.NoError(t, carts.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 2}))
	require.NoError(t, carts.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productB.ID, Quantity: 1}))

	orderID, err := orders.Checkout(ctx, user.ID)
	require.NoError(t, err)
	require.NotZero(t, orderID)

	var order model.Order
	require.NoError(t, db.Preload("Lines").First(&order, orderID).Error)

	// 80*2 + 50*1
	assert.True(t, order.Total.Equal(dec("210")), "total = %s", order.Total)
	assert.Equal(t, model.OrderStatusPreparing, order.Status)
	require.Len(t, order.Lines, 2)

	byProduct := map[uint]model.OrderLine{}
	for _, line := range order.Lines {
		require.NotNil(t, line.ProductID)
		byProduct[*line.ProductID] = line
	}
	assert.True(t, byProduct[productA.ID].UnitPrice.Equal(dec("80")))
	assert.Equal(t, 2, byProduct[productA.ID].Quantity)
	assert.True(t, byProduct[productB.ID].UnitPrice.Equal(dec("50")))

	// ledger emptied; immediate re-checkout fails
	assert.Empty(t, cartRows(t, db, user.ID))
	_, err = orders.Checkout(ctx, user.ID)
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	// stock decremented inside the same transaction
	var fresh model.Product
	require.NoError(t, db.First(&fresh, productA.ID).Error)
	assert.Equal(t, 8, fresh.StockQuantity)
}

func TestCheckoutSnapshotsPrices(t *testing.T) {
	db := newTestDB(t)
	productA, _, _ := seedCatalog(t, db)
	user := seedUser(t, db, "buyer@example.com")
	carts := newCartService(db)
	orders := newOrderService(db)
	ctx := context.Background()

	require.NoError(t, carts.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 1}))

	orderID, err := orders.Checkout(ctx, user.ID)
	require.NoError(t, err)

	// catalog price change after checkout must not touch the order
	require.NoError(t, db.Model(productA).Update("discount_price", dec("10")).Error)

	var order model.Order
	require.NoError(t, db.Preload("Lines").First(&order, orderID).Error)
	assert.True(t, order.Lines[0].UnitPrice.Equal(dec("80")))
	assert.True(t, order.Total.Equal(dec("80")))
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	productA, _, _ := seedCatalog(t, db)
	user := seedUser(t, db, "buyer@example.com")
	carts := newCartService(db)
	orders := newOrderService(db)
	ctx := context.Background()

	require.NoError(t, db.Model(productA).Update("stock_quantity", 1).Error)
	require.NoError(t, carts.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 2}))

	_, err := orders.Checkout(ctx, user.ID)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))

	// nothing materialized, cart untouched, stock untouched
	var orderCount, lineCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&model.OrderLine{}).Count(&lineCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, lineCount)
	assert.Len(t, cartRows(t, db, user.ID), 1)

	var fresh model.Product
	require.NoError(t, db.First(&fresh, productA.ID).Error)
	assert.Equal(t, 1, fresh.StockQuantity)
}

func TestCheckoutMixedCart(t *testing.T) {
	db := newTestDB(t)
	productA, _, accessory := seedCatalog(t, db)
	user := seedUser(t, db, "buyer@example.com")
	carts := newCartService(db)
	orders := newOrderService(db)
	ctx := context.Background()

	require.NoError(t, carts.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 1}))
	require.NoError(t, carts.Add(ctx, user.ID, &dto.AddCartItemRequest{AccessoryID: &accessory.ID, Quantity: 2}))

	orderID, err := orders.Checkout(ctx, user.ID)
	require.NoError(t, err)

	var order model.Order
	require.NoError(t, db.Preload("Lines").First(&order, orderID).Error)
	// 80 + 25*2
	assert.True(t, order.Total.Equal(dec("130")), "total = %s", order.Total)

	var freshAccessory model.Accessory
	require.NoError(t, db.First(&freshAccessory, accessory.ID).Error)
	assert.Equal(t, 8, freshAccessory.StockQuantity)
}

func TestListOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	productA, _, _ := seedCatalog(t, db)
	user := seedUser(t, db, "buyer@example.com")
	carts := newCartService(db)
	orders := newOrderService(db)
	ctx := context.Background()

	require.NoError(t, carts.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 1}))
	first, err := orders.Checkout(ctx, user.ID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, carts.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 1}))
	second, err := orders.Checkout(ctx, user.ID)
	require.NoError(t, err)

	list, err := orders.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []uint{second, first}, []uint{list[0].ID, list[1].ID})
	assert.Len(t, list[0].Lines, 1)
}

func TestCheckoutSkipsDanglingRows(t *testing.T) {
	db := newTestDB(t)
	productA, productB, _ := seedCatalog(t, db)
	user := seedUser(t, db, "buyer@example.com")
	carts := newCartService(db)
	orders := newOrderService(db)
	ctx := context.Background()

	require.NoError(t, carts.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 1}))
	require.NoError(t, carts.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productB.ID, Quantity: 1}))
	require.NoError(t, db.Delete(&model.Product{}, productA.ID).Error)

	orderID, err := orders.Checkout(ctx, user.ID)
	require.NoError(t, err)

	var order model.Order
	require.NoError(t, db.Preload("Lines").First(&order, orderID).Error)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, &productB.ID, order.Lines[0].ProductID)
	assert.True(t, dec("50").Equal(order.Total))
}

func TestCheckoutOnlyDanglingRowsIsEmptyCart(t *testing.T) {
	db := newTestDB(t)
	productA, _, _ := seedCatalog(t, db)
	user := seedUser(t, db, "buyer@example.com")
	carts := newCartService(db)
	orders := newOrderService(db)
	ctx := context.Background()

	require.NoError(t, carts.Add(ctx, user.ID, &dto.AddCartItemRequest{ProductID: &productA.ID, Quantity: 1}))
	require.NoError(t, db.Delete(&model.Product{}, productA.ID).Error)

	_, err := orders.Checkout(ctx, user.ID)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}
