package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"street-eats/internal/api"
	apimw "street-eats/internal/api/middleware"
	"street-eats/internal/config"
	"street-eats/internal/metrics"
	"street-eats/internal/modules/addresses"
	"street-eats/internal/modules/admin"
	"street-eats/internal/modules/auth"
	"street-eats/internal/modules/menu"
	"street-eats/internal/modules/orders"
	"street-eats/internal/modules/users"
	"street-eats/pkg/email"
	"street-eats/pkg/notify"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// 1. --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	e := echo.New()
	e.HideBanner = true

	// 2. --- Middleware ---
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(apimw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())

	m := metrics.New(prometheus.DefaultRegisterer)
	e.Use(m.Middleware())

	// 3. --- Database Connection ---
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to parse database configuration")
	}
	dbPool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to create connection pool")
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("unable to ping database")
	}
	logger.Info().Msg("connected to the database")

	// Optional redis cache; the menu service degrades to uncached reads
	// without it.
	var cache *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			opts = &redis.Options{Addr: cfg.RedisURL}
		}
		if cfg.RedisPassword != "" {
			opts.Password = cfg.RedisPassword
		}
		cache = redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := cache.Ping(pingCtx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, menu cache disabled")
			cache = nil
		}
		cancel()
	}

	notifier := notify.NewTelegramNotifier(cfg.BotToken, cfg.AdminChatID, logger)

	var receipts orders.ReceiptSender
	if cfg.EmailFrom != "" && cfg.OrderEmailTo != "" {
		sender, err := email.NewSESV2Sender(context.Background(), cfg.AWSRegion, cfg.EmailFrom, cfg.OrderEmailTo)
		if err != nil {
			logger.Warn().Err(err).Msg("SES unavailable, order receipt emails disabled")
		} else {
			receipts = sender
		}
	}

	// 4. --- Dependency Injection (Wiring everything up) ---
	addressRepo := addresses.NewRepository(dbPool)
	addressService := addresses.NewService(addressRepo)
	addressHandler := addresses.NewHandler(addressService)

	userRepo := users.NewRepository(dbPool)
	userService := users.NewService(userRepo, addressService)
	userHandler := users.NewHandler(userService)

	authService := auth.NewService(userRepo, userService, cfg.BotToken, cfg.JWTSecret, cfg.JWTExpiry, cfg.InitDataTTL)
	authHandler := auth.NewHandler(authService)

	menuRepo := menu.NewRepository(dbPool)
	menuService := menu.NewService(menuRepo, cache, cfg.MenuCacheTTL, cfg.RegionsCacheTTL)
	menuHandler := menu.NewHandler(menuService)

	orderRepo := orders.NewRepository(dbPool)
	orderService := orders.NewService(orderRepo, menuRepo, addressRepo, userRepo, notifier, receipts, m.OrdersCreated, logger)
	orderHandler := orders.NewHandler(orderService)

	adminRepo := admin.NewRepository(dbPool)
	adminService := admin.NewService(adminRepo, orderRepo, menuService, notifier, userRepo, cfg.JWTSecret, cfg.AdminJWTExpiry)
	adminHandler := admin.NewHandler(adminService)

	if err := adminService.EnsureDefaultAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Warn().Err(err).Msg("could not ensure default admin account")
	}

	// 5. --- Initialize Router ---
	api.SetupRoutes(e, cfg.JWTSecret,
		authHandler,
		menuHandler,
		userHandler,
		addressHandler,
		orderHandler,
		adminHandler,
	)

	// 6. --- Start Server with graceful shutdown ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}
	logger.Info().Msg("server exiting")
}
