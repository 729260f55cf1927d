package handler

import (
	"net/http"

	"pixer-marketplace/internal/middleware"
	"pixer-marketplace/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	// Create the profile row on first sight of a valid token.
	if claims := middleware.GetClaims(c); claims != nil {
		if err := h.userService.EnsureProfile(ctx, userID, claims.Email, claims.FullName); err != nil {
			return err
		}
	}

	me, err := h.userService.Me(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, me)
}
