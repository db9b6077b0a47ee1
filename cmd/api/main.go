package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ahmetcinarr/selvigsm/internal/auth"
	"github.com/ahmetcinarr/selvigsm/internal/client"
	"github.com/ahmetcinarr/selvigsm/internal/config"
	"github.com/ahmetcinarr/selvigsm/internal/logger"
	"github.com/ahmetcinarr/selvigsm/internal/repository"
	"github.com/ahmetcinarr/selvigsm/internal/server"
	"github.com/ahmetcinarr/selvigsm/internal/service"
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

	db, err := client.InitMysqlClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	accessoryRepo := repository.NewAccessoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	contentRepo := repository.NewContentRepository(db)

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	sessions := auth.NewSessionStore(
		cfg.Admin.SessionLifetime,
		cfg.Admin.SessionRotateAfter,
		cfg.Admin.MaxLoginAttempts,
		cfg.Admin.LockoutWindow,
	)

	authService := service.NewAuthService(userRepo, tokens, cfg.Auth.BcryptCost)
	catalogService := service.NewCatalogService(productRepo, accessoryRepo, categoryRepo, userRepo, cartRepo)
	cartService := service.NewCartService(cartRepo, productRepo, accessoryRepo)
	orderService := service.NewOrderService(db, cartRepo, orderRepo, productRepo, accessoryRepo)
	contentService := service.NewContentService(contentRepo)

	srv := server.NewServer(
		cfg, log, tokens, sessions,
		authService, catalogService, cartService, orderService, contentService,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

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

	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}
