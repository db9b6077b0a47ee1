package handler

import (
	"net/http"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/ahmetcinarr/selvigsm/internal/dto"
	"github.com/ahmetcinarr/selvigsm/internal/service"
	"github.com/labstack/echo/v4"
)

type ContentHandler struct {
	contentService service.ContentService
}

func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

func (h *ContentHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	content, err := h.contentService.Get(ctx, c.Param("key"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, content)
}

func (h *ContentHandler) AdminUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ContentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "malformed request body")
	}

	content, err := h.contentService.Update(ctx, c.Param("key"), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, content)
}
