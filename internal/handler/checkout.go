package handler

import (
	"errors"
	"net/http"

	"pixer-marketplace/internal/checkout"
	"pixer-marketplace/internal/dto"
	"pixer-marketplace/internal/middleware"
	"pixer-marketplace/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// checkoutError maps domain refusals onto HTTP statuses.
func checkoutError(err error) error {
	var paymentErr *service.PaymentError
	switch {
	case errors.Is(err, checkout.ErrAuthRequired):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, checkout.ErrNoGatewaySelected),
		errors.Is(err, service.ErrNotAtConfirm),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrMissingPaymentNonce):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGatewayNotConfigured),
		errors.Is(err, service.ErrGatewayUnavailable):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrPurchaseNotPending),
		errors.Is(err, service.ErrAlreadyCompleting):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidSignature):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.As(err, &paymentErr):
		return echo.NewHTTPError(http.StatusPaymentRequired, paymentErr.Error())
	default:
		return err
	}
}

func (h *CheckoutHandler) Open(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.checkoutService.Open(ctx, middleware.UserID(c))
	if err != nil {
		return checkoutError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) View(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.checkoutService.View(ctx, middleware.UserID(c))
	if err != nil {
		return checkoutError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) SelectGateway(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SelectGatewayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	view, err := h.checkoutService.SelectGateway(ctx, middleware.UserID(c), req.Gateway)
	if err != nil {
		return checkoutError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) Advance(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.checkoutService.Advance(ctx, middleware.UserID(c))
	if err != nil {
		return checkoutError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) Back(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.checkoutService.Back(ctx, middleware.UserID(c))
	if err != nil {
		return checkoutError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) Complete(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CompleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.checkoutService.Complete(ctx, middleware.UserID(c), &req)
	if err != nil {
		return checkoutError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) PaymentCallback(c echo.Context) error {
	ctx := c.Request().Context()

	var cb dto.PaymentCallback
	if err := c.Bind(&cb); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.checkoutService.ConfirmPayment(ctx, middleware.UserID(c), &cb)
	if err != nil {
		return checkoutError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) AcknowledgeGift(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.checkoutService.AcknowledgeGift(ctx, middleware.UserID(c))
	if err != nil {
		return checkoutError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) Close(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.checkoutService.Close(ctx, middleware.UserID(c)); err != nil {
		return checkoutError(err)
	}
	return c.NoContent(http.StatusOK)
}
