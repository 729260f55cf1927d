package handler

import (
	"net/http"
	"strconv"

	"pixer-marketplace/internal/dto"
	"pixer-marketplace/internal/middleware"
	"pixer-marketplace/internal/service"

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

func productIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return id, nil
}

func (h *CartHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.cartService.Get(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	view, err := h.cartService.AddItem(ctx, middleware.UserID(c), req.ProductID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := productIDParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	view, err := h.cartService.UpdateQuantity(ctx, middleware.UserID(c), id, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := productIDParam(c)
	if err != nil {
		return err
	}

	view, err := h.cartService.Remove(ctx, middleware.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.cartService.Clear(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}
