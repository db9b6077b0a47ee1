package handler

import (
	"net/http"
	"strconv"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/ahmetcinarr/selvigsm/internal/dto"
	"github.com/ahmetcinarr/selvigsm/internal/service"
	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var query dto.ProductListQuery
	if err := c.Bind(&query); err != nil {
		return apperr.New(apperr.Validation, "invalid query parameters")
	}

	products, err := h.catalogService.ListProducts(ctx, &query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.catalogService.GetProductBySlug(ctx, c.Param("slug"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) ListAccessories(c echo.Context) error {
	ctx := c.Request().Context()

	accessories, err := h.catalogService.ListAccessories(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, accessories)
}

// -------- admin --------

func (h *CatalogHandler) AdminListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.ListAllProducts(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) AdminCreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "malformed request body")
	}

	product, err := h.catalogService.CreateProduct(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) AdminUpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "malformed request body")
	}

	product, err := h.catalogService.UpdateProduct(ctx, id, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) AdminDeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteProduct(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "product deleted"})
}

func (h *CatalogHandler) AdminListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.catalogService.ListUsers(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, users)
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperr.Newf(apperr.Validation, "invalid %s parameter", name)
	}
	return uint(id), nil
}
