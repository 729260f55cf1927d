package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pixer-marketplace/internal/cart"
	"pixer-marketplace/internal/client"
	"pixer-marketplace/internal/config"
	"pixer-marketplace/internal/logger"
	"pixer-marketplace/internal/repository"
	"pixer-marketplace/internal/server"
	"pixer-marketplace/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	db, err := client.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}

	razorpayClient := client.NewRazorpayClient(&cfg.Razorpay)
	braintreeClient := client.NewBraintreeClient(&cfg.Braintree)

	productRepo := repository.NewProductRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	acquisitionRepo := repository.NewAcquisitionRepository(db)
	giftRepo := repository.NewGiftRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	gatewayRepo := repository.NewGatewayRepository(db)
	planRepo := repository.NewPlanRepository(db)

	ctx := context.Background()
	if err := productRepo.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed products")
	}
	if err := gatewayRepo.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed payment gateways")
	}
	if err := planRepo.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed subscription plans")
	}

	carts := cart.NewManager()

	cartService := service.NewCartService(carts, productRepo, profileRepo)
	checkoutService := service.NewCheckoutService(
		db, cfg.Checkout, "Pixer Marketplace", carts,
		razorpayClient, braintreeClient,
		profileRepo, acquisitionRepo, giftRepo, orderRepo, gatewayRepo,
		log,
	)
	userService := service.NewUserService(profileRepo, acquisitionRepo, giftRepo)
	catalogService := service.NewCatalogService(productRepo, planRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(cartService, checkoutService, userService, catalogService, []byte(cfg.JWT.Secret))

	log.Info().Str("addr", serverAddr).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}
