package server

import (
	"pixer-marketplace/internal/handler"
	mw "pixer-marketplace/internal/middleware"
	"pixer-marketplace/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	userHandler     *handler.UserHandler
	catalogHandler  *handler.CatalogHandler
	jwtSecret       []byte
}

func NewServer(
	cartService service.CartService,
	checkoutService service.CheckoutService,
	userService service.UserService,
	catalogService service.CatalogService,
	jwtSecret []byte,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		cartHandler:     handler.NewCartHandler(cartService),
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		userHandler:     handler.NewUserHandler(userService),
		catalogHandler:  handler.NewCatalogHandler(catalogService),
		jwtSecret:       jwtSecret,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/plans", s.catalogHandler.ListPlans)

	authed := api.Group("", mw.Auth(s.jwtSecret))
	authed.GET("/me", s.userHandler.Me)

	// -------- cart --------
	cart := authed.Group("/cart")
	cart.GET("", s.cartHandler.Get)
	cart.POST("/items", s.cartHandler.AddItem)
	cart.PATCH("/items/:id", s.cartHandler.UpdateQuantity)
	cart.DELETE("/items/:id", s.cartHandler.Remove)
	cart.DELETE("", s.cartHandler.Clear)

	// -------- checkout --------
	// Open is optional-auth: without a session it reports auth_required
	// instead of rejecting, so the UI can show the login prompt.
	api.POST("/checkout/open", s.checkoutHandler.Open, mw.OptionalAuth(s.jwtSecret))

	co := authed.Group("/checkout")
	co.GET("", s.checkoutHandler.View)
	co.POST("/gateway", s.checkoutHandler.SelectGateway)
	co.POST("/advance", s.checkoutHandler.Advance)
	co.POST("/back", s.checkoutHandler.Back)
	co.POST("/complete", s.checkoutHandler.Complete)
	co.POST("/payment/callback", s.checkoutHandler.PaymentCallback)
	co.POST("/gift/ack", s.checkoutHandler.AcknowledgeGift)
	co.POST("/close", s.checkoutHandler.Close)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
