package dto

import (
	"github.com/ahmetcinarr/selvigsm/internal/model"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

type AddCartItemRequest struct {
	ProductID   *uint `json:"product_id"`
	AccessoryID *uint `json:"accessory_id"`
	Quantity    int   `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartLine is a ledger row joined with its current catalog entry.
// Prices here are live; they are only frozen at checkout.
type CartLine struct {
	ID            uint             `json:"id"`
	ProductID     *uint            `json:"product_id,omitempty"`
	AccessoryID   *uint            `json:"accessory_id,omitempty"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug,omitempty"`
	ImageURL      string           `json:"image_url"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Quantity      int              `json:"quantity"`
	LineTotal     decimal.Decimal  `json:"line_total"`
}

type CartTotalResponse struct {
	Total decimal.Decimal `json:"total"`
}

type CheckoutResponse struct {
	Message string `json:"message"`
	OrderID uint   `json:"order_id"`
}

type ProductListQuery struct {
	Category string `query:"category"`
	Featured bool   `query:"featured"`
	Limit    int    `query:"limit"`
	Page     int    `query:"page"`
}

type ProductRequest struct {
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description"`
	Price            decimal.Decimal  `json:"price"`
	DiscountPrice    *decimal.Decimal `json:"discount_price"`
	StockQuantity    int              `json:"stock_quantity"`
	CategoryID       uint             `json:"category_id"`
	Brand            string           `json:"brand"`
	Model            string           `json:"model"`
	Color            string           `json:"color"`
	Storage          string           `json:"storage"`
	ImageURL         string           `json:"image_url"`
	IsFeatured       bool             `json:"is_featured"`
	IsActive         *bool            `json:"is_active"`
}

type ContentRequest struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	MetaDescription string `json:"meta_description"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error envelope for every failure status.
type ErrorResponse struct {
	Error      string            `json:"error"`
	Errors     map[string]string `json:"errors,omitempty"`
	RetryAfter int               `json:"retry_after,omitempty"`
}
