package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/ahmetcinarr/selvigsm/internal/dto"
	"github.com/ahmetcinarr/selvigsm/internal/model"
	"github.com/ahmetcinarr/selvigsm/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService interface {
	List(ctx context.Context, userID uint) ([]*dto.CartLine, error)
	Add(ctx context.Context, userID uint, req *dto.AddCartItemRequest) error
	SetQuantity(ctx context.Context, userID, itemID uint, qty int) error
	Remove(ctx context.Context, userID, itemID uint) error
	Clear(ctx context.Context, userID uint) error
	Total(ctx context.Context, userID uint) (decimal.Decimal, error)
}

type cartServiceImpl struct {
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	accessoryRepo repository.AccessoryRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	accessoryRepo repository.AccessoryRepository,
) CartService {
	return &cartServiceImpl{
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		accessoryRepo: accessoryRepo,
	}
}

func (s *cartServiceImpl) List(ctx context.Context, userID uint) ([]*dto.CartLine, error) {
	items, err := s.cartRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}

	lines := make([]*dto.CartLine, 0, len(items))
	for _, item := range items {
		line, ok := cartLineFromItem(item)
		if !ok {
			continue
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func (s *cartServiceImpl) Add(ctx context.Context, userID uint, req *dto.AddCartItemRequest) error {
	if (req.ProductID == nil) == (req.AccessoryID == nil) {
		return apperr.New(apperr.Validation, "exactly one of product_id or accessory_id is required")
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return apperr.New(apperr.Validation, "quantity must be positive")
	}

	if req.ProductID != nil {
		if _, err := s.productRepo.FindActiveByID(ctx, *req.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "product not found")
			}
			return fmt.Errorf("find product: %w", err)
		}
		if err := s.cartRepo.AddProduct(ctx, userID, *req.ProductID, qty); err != nil {
			return fmt.Errorf("add product to cart: %w", err)
		}
		return nil
	}

	if _, err := s.accessoryRepo.FindActiveByID(ctx, *req.AccessoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "accessory not found")
		}
		return fmt.Errorf("find accessory: %w", err)
	}
	if err := s.cartRepo.AddAccessory(ctx, userID, *req.AccessoryID, qty); err != nil {
		return fmt.Errorf("add accessory to cart: %w", err)
	}
	return nil
}

// SetQuantity with qty <= 0 removes the row; this is defined behavior,
// not an error.
func (s *cartServiceImpl) SetQuantity(ctx context.Context, userID, itemID uint, qty int) error {
	if qty <= 0 {
		return s.Remove(ctx, userID, itemID)
	}

	if err := s.cartRepo.SetQuantity(ctx, userID, itemID, qty); err != nil {
		return fmt.Errorf("set cart quantity: %w", err)
	}
	return nil
}

func (s *cartServiceImpl) Remove(ctx context.Context, userID, itemID uint) error {
	if err := s.cartRepo.Delete(ctx, userID, itemID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID uint) error {
	if err := s.cartRepo.Clear(ctx, nil, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Total sums (discount_price ?? price) * quantity over the ledger at
// the current catalog prices. Prices can drift between add-to-cart and
// checkout; only checkout snapshots them.
func (s *cartServiceImpl) Total(ctx context.Context, userID uint) (decimal.Decimal, error) {
	items, err := s.cartRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list cart items: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		unit, ok := unitPriceOf(item)
		if !ok {
			continue
		}
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total, nil
}

// unitPriceOf resolves the live unit price of a ledger row from its
// preloaded catalog entry. A row whose catalog entry is gone reports
// false; callers skip it.
func unitPriceOf(item *model.CartItem) (decimal.Decimal, bool) {
	switch {
	case item.Product != nil:
		return item.Product.UnitPrice(), true
	case item.Accessory != nil:
		return item.Accessory.Price, true
	default:
		return decimal.Zero, false
	}
}

func cartLineFromItem(item *model.CartItem) (*dto.CartLine, bool) {
	unit, ok := unitPriceOf(item)
	if !ok {
		return nil, false
	}

	line := &dto.CartLine{
		ID:          item.ID,
		ProductID:   item.ProductID,
		AccessoryID: item.AccessoryID,
		Quantity:    item.Quantity,
		LineTotal:   unit.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}

	if item.Product != nil {
		line.Name = item.Product.Name
		line.Slug = item.Product.Slug
		line.ImageURL = item.Product.ImageURL
		line.Price = item.Product.Price
		line.DiscountPrice = item.Product.DiscountPrice
	} else if item.Accessory != nil {
		line.Name = item.Accessory.Name
		line.ImageURL = item.Accessory.ImageURL
		line.Price = item.Accessory.Price
	}

	return line, true
}
