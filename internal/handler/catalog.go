package handler

import (
	"net/http"

	"pixer-marketplace/internal/service"

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

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.ListProducts(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) ListPlans(c echo.Context) error {
	ctx := c.Request().Context()

	plans, err := h.catalogService.ListPlans(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}
