package handler

import (
	"net/http"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/ahmetcinarr/selvigsm/internal/dto"
	"github.com/ahmetcinarr/selvigsm/internal/middleware"
	"github.com/ahmetcinarr/selvigsm/internal/service"
	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	lines, err := h.cartService.List(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, lines)
}

func (h *CartHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "malformed request body")
	}

	if err := h.cartService.Add(ctx, middleware.UserID(c), &req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "item added to cart"})
}

func (h *CartHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "malformed request body")
	}

	if err := h.cartService.SetQuantity(ctx, middleware.UserID(c), itemID, req.Quantity); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "cart updated"})
}

func (h *CartHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.cartService.Remove(ctx, middleware.UserID(c), itemID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "item removed from cart"})
}

func (h *CartHandler) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.cartService.Clear(ctx, middleware.UserID(c)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "cart cleared"})
}

func (h *CartHandler) Total(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := h.cartService.Total(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CartTotalResponse{Total: total})
}
