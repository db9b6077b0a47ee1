package service

import (
	"testing"

	"github.com/ahmetcinarr/selvigsm/internal/client"
	"github.com/ahmetcinarr/selvigsm/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(db))

	return db
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

// seedCatalog creates the worked example data: product A at 100 with
// discount 80, product B at 50, one accessory at 25.
func seedCatalog(t *testing.T, db *gorm.DB) (productA, productB *model.Product, accessory *model.Accessory) {
	t.Helper()

	category := &model.Category{Name: "Phones", Slug: "phones", IsActive: true}
	require.NoError(t, db.Create(category).Error)

	productA = &model.Product{
		Name:          "Product A",
		Slug:          "product-a",
		Price:         dec("100"),
		DiscountPrice: decPtr("80"),
		StockQuantity: 10,
		CategoryID:    category.ID,
		IsActive:      true,
	}
	productB = &model.Product{
		Name:          "Product B",
		Slug:          "product-b",
		Price:         dec("50"),
		StockQuantity: 10,
		CategoryID:    category.ID,
		IsActive:      true,
	}
	require.NoError(t, db.Create(productA).Error)
	require.NoError(t, db.Create(productB).Error)

	accessory = &model.Accessory{
		Name:          "Charger",
		Price:         dec("25"),
		StockQuantity: 10,
		IsActive:      true,
	}
	require.NoError(t, db.Create(accessory).Error)

	return productA, productB, accessory
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Email:        email,
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
