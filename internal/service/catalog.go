package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/ahmetcinarr/selvigsm/internal/dto"
	"github.com/ahmetcinarr/selvigsm/internal/model"
	"github.com/ahmetcinarr/selvigsm/internal/repository"
	"gorm.io/gorm"
)

type CatalogService interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	ListProducts(ctx context.Context, query *dto.ProductListQuery) ([]*model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	ListAccessories(ctx context.Context) ([]*model.Accessory, error)

	// Admin operations; callers must already be authorized.
	ListAllProducts(ctx context.Context) ([]*model.Product, error)
	CreateProduct(ctx context.Context, req *dto.ProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint, req *dto.ProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	ListUsers(ctx context.Context) ([]*model.User, error)
}

type catalogServiceImpl struct {
	productRepo   repository.ProductRepository
	accessoryRepo repository.AccessoryRepository
	categoryRepo  repository.CategoryRepository
	userRepo      repository.UserRepository
	cartRepo      repository.CartRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	accessoryRepo repository.AccessoryRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	cartRepo repository.CartRepository,
) CatalogService {
	return &catalogServiceImpl{
		productRepo:   productRepo,
		accessoryRepo: accessoryRepo,
		categoryRepo:  categoryRepo,
		userRepo:      userRepo,
		cartRepo:      cartRepo,
	}
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.ListActive(ctx)
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, query *dto.ProductListQuery) ([]*model.Product, error) {
	return s.productRepo.ListActive(ctx, repository.ProductFilter{
		CategorySlug: query.Category,
		FeaturedOnly: query.Featured,
		Page:         query.Page,
		Limit:        query.Limit,
	})
}

func (s *catalogServiceImpl) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.productRepo.FindActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, fmt.Errorf("find product by slug: %w", err)
	}

	return product, nil
}

func (s *catalogServiceImpl) ListAccessories(ctx context.Context) ([]*model.Accessory, error) {
	return s.accessoryRepo.ListActive(ctx)
}

func (s *catalogServiceImpl) ListAllProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.ListAll(ctx)
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, req *dto.ProductRequest) (*model.Product, error) {
	if err := s.validateProduct(ctx, req); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:             req.Name,
		Slug:             Slugify(req.Name),
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		DiscountPrice:    req.DiscountPrice,
		StockQuantity:    req.StockQuantity,
		CategoryID:       req.CategoryID,
		Brand:            req.Brand,
		Model:            req.Model,
		Color:            req.Color,
		Storage:          req.Storage,
		ImageURL:         req.ImageURL,
		IsFeatured:       req.IsFeatured,
		IsActive:         true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, id uint, req *dto.ProductRequest) (*model.Product, error) {
	if err := s.validateProduct(ctx, req); err != nil {
		return nil, err
	}

	// admins may edit inactive products too
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.ShortDescription = req.ShortDescription
	product.Price = req.Price
	product.DiscountPrice = req.DiscountPrice
	product.StockQuantity = req.StockQuantity
	product.CategoryID = req.CategoryID
	product.Brand = req.Brand
	product.Model = req.Model
	product.Color = req.Color
	product.Storage = req.Storage
	product.ImageURL = req.ImageURL
	product.IsFeatured = req.IsFeatured
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

// DeleteProduct removes the product and its rows from every cart.
// The cart rows go first so no ledger row is left pointing at a
// missing catalog entry.
func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.cartRepo.DeleteByProduct(ctx, id); err != nil {
		return fmt.Errorf("purge cart rows: %w", err)
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *catalogServiceImpl) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *catalogServiceImpl) validateProduct(ctx context.Context, req *dto.ProductRequest) error {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if req.Price.IsNegative() || req.Price.IsZero() {
		fields["price"] = "price must be positive"
	}
	if req.DiscountPrice != nil && !req.DiscountPrice.LessThan(req.Price) {
		fields["discount_price"] = "discount price must be below the list price"
	}
	if req.StockQuantity < 0 {
		fields["stock_quantity"] = "stock quantity cannot be negative"
	}
	if len(fields) > 0 {
		return apperr.New(apperr.Validation, "invalid product input").WithFields(fields)
	}

	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.Validation, "invalid product input").
				WithFields(map[string]string{"category_id": "category does not exist"})
		}
		return fmt.Errorf("find category: %w", err)
	}

	return nil
}

var (
	turkishReplacer = strings.NewReplacer(
		"ğ", "g", "ü", "u", "ş", "s", "ı", "i", "ö", "o", "ç", "c",
		"Ğ", "g", "Ü", "u", "Ş", "s", "İ", "i", "Ö", "o", "Ç", "c",
	)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify turns a product name into a URL slug, transliterating
// Turkish characters first.
func Slugify(name string) string {
	slug := strings.ToLower(turkishReplacer.Replace(name))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
