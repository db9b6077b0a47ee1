package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	FirstName    string     `gorm:"size:100" json:"first_name"`
	LastName     string     `gorm:"size:100" json:"last_name"`
	Phone        string     `gorm:"size:32" json:"phone"`
	IsAdmin      bool       `gorm:"not null;default:false" json:"is_admin"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Category struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}

type Product struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Name             string          `gorm:"size:255;not null" json:"name"`
	Slug             string          `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description      string          `gorm:"type:text" json:"description"`
	ShortDescription string          `gorm:"size:500" json:"short_description"`
	Price            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	// nullable, must be below Price when set
	DiscountPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount_price"`
	StockQuantity int              `gorm:"not null;default:0" json:"stock_quantity"`
	CategoryID    uint             `gorm:"index;not null" json:"category_id"`
	Category      *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand         string           `gorm:"size:100" json:"brand"`
	Model         string           `gorm:"size:100" json:"model"`
	Color         string           `gorm:"size:50" json:"color"`
	Storage       string           `gorm:"size:50" json:"storage"`
	ImageURL      string           `gorm:"size:500" json:"image_url"`
	IsFeatured    bool             `gorm:"not null;default:false" json:"is_featured"`
	IsActive      bool             `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// UnitPrice is the price a cart or order line pays right now: the
// discount price when one is set, the list price otherwise.
func (p *Product) UnitPrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

type Accessory struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL      string          `gorm:"size:500" json:"image_url"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CartItem is one pending ledger row. Exactly one of ProductID or
// AccessoryID is set; re-adding the same target increments Quantity
// instead of inserting a second row.
type CartItem struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_cart_user_product;uniqueIndex:idx_cart_user_accessory" json:"user_id"`
	ProductID   *uint      `gorm:"uniqueIndex:idx_cart_user_product" json:"product_id"`
	AccessoryID *uint      `gorm:"uniqueIndex:idx_cart_user_accessory" json:"accessory_id"`
	Quantity    int        `gorm:"not null" json:"quantity"`
	Product     *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Accessory   *Accessory `gorm:"foreignKey:AccessoryID" json:"accessory,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

const OrderStatusPreparing = "preparing"

type Order struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"index;not null" json:"user_id"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status    string          `gorm:"size:32;not null;default:'preparing'" json:"status"`
	Lines     []OrderLine     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderLine copies the unit price at checkout time. Later catalog price
// changes never alter an existing order.
type OrderLine struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"index;not null" json:"order_id"`
	ProductID   *uint           `json:"product_id"`
	AccessoryID *uint           `json:"accessory_id"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

type SiteContent struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PageKey         string    `gorm:"size:100;uniqueIndex;not null" json:"page_key"`
	Title           string    `gorm:"size:255" json:"title"`
	Content         string    `gorm:"type:text" json:"content"`
	MetaDescription string    `gorm:"size:500" json:"meta_description"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	UpdatedAt       time.Time `json:"updated_at"`
}
