package service

import (
	"context"
	"fmt"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/ahmetcinarr/selvigsm/internal/model"
	"github.com/ahmetcinarr/selvigsm/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	// Checkout materializes the user's cart into an order with
	// price-snapshotted lines, decrements stock, and empties the cart.
	// All of it happens in one transaction or not at all.
	Checkout(ctx context.Context, userID uint) (uint, error)
	ListOrders(ctx context.Context, userID uint) ([]*model.Order, error)
	ListAllOrders(ctx context.Context) ([]*model.Order, error)
}

type orderServiceImpl struct {
	db            *gorm.DB
	cartRepo      repository.CartRepository
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	accessoryRepo repository.AccessoryRepository
}

func NewOrderService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	accessoryRepo repository.AccessoryRepository,
) OrderService {
	return &orderServiceImpl{
		db:            db,
		cartRepo:      cartRepo,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		accessoryRepo: accessoryRepo,
	}
}

func (s *orderServiceImpl) Checkout(ctx context.Context, userID uint) (uint, error) {
	var orderID uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := s.cartRepo.ListByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("read cart: %w", err)
		}
		if len(items) == 0 {
			return apperr.New(apperr.Validation, "cart is empty")
		}

		total := decimal.Zero
		lines := make([]*model.OrderLine, 0, len(items))
		for _, item := range items {
			unit, ok := unitPriceOf(item)
			if !ok {
				// catalog entry deleted since the row was added
				continue
			}
			total = total.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
			lines = append(lines, &model.OrderLine{
				ProductID:   item.ProductID,
				AccessoryID: item.AccessoryID,
				Quantity:    item.Quantity,
				UnitPrice:   unit,
			})
		}
		if len(lines) == 0 {
			return apperr.New(apperr.Validation, "cart is empty")
		}

		order := &model.Order{
			UserID: userID,
			Total:  total,
			Status: model.OrderStatusPreparing,
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}

		for _, line := range lines {
			line.OrderID = order.ID
		}
		if err := s.orderRepo.CreateLines(ctx, tx, lines); err != nil {
			return fmt.Errorf("store order lines: %w", err)
		}

		for _, line := range lines {
			if err := s.decrementStock(ctx, tx, line); err != nil {
				return err
			}
		}

		if err := s.cartRepo.Clear(ctx, tx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		orderID = order.ID
		return nil
	})

	if err != nil {
		return 0, err
	}

	return orderID, nil
}

func (s *orderServiceImpl) decrementStock(ctx context.Context, tx *gorm.DB, line *model.OrderLine) error {
	var (
		ok  bool
		err error
	)

	switch {
	case line.ProductID != nil:
		ok, err = s.productRepo.DecrementStock(ctx, tx, *line.ProductID, line.Quantity)
	case line.AccessoryID != nil:
		ok, err = s.accessoryRepo.DecrementStock(ctx, tx, *line.AccessoryID, line.Quantity)
	default:
		return apperr.New(apperr.Internal, "order line without a catalog reference")
	}

	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if !ok {
		return apperr.New(apperr.Conflict, "insufficient stock for one of the cart items")
	}
	return nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, userID uint) ([]*model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *orderServiceImpl) ListAllOrders(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.ListAll(ctx)
}
