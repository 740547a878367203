package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "miniapp-market-backend/docs"
	"miniapp-market-backend/internal/common/cache"
	"miniapp-market-backend/internal/common/config"
	"miniapp-market-backend/internal/common/logger"
	"miniapp-market-backend/internal/common/middleware"
	"miniapp-market-backend/internal/features/auth/initdata"
	productRepo "miniapp-market-backend/internal/features/product/repository/postgres"
	productService "miniapp-market-backend/internal/features/product/service"
	profileRepo "miniapp-market-backend/internal/features/profile/repository/postgres"
	profileService "miniapp-market-backend/internal/features/profile/service"
	referralRepo "miniapp-market-backend/internal/features/referral/repository/postgres"
	referralService "miniapp-market-backend/internal/features/referral/service"
	webappHttp "miniapp-market-backend/internal/features/webapp/delivery/http"
	"miniapp-market-backend/internal/platform/postgres"
	"miniapp-market-backend/internal/platform/redis"
)

// @title           Mini App Market API
// @version         1.0
// @description     Backend for the Telegram Mini App marketplace. Every action carries signed initData in the request body.

// @host      localhost:8080
// @BasePath  /api/v1

// @tag.name webapp
// @tag.description Mini App actions - product management and referral statistics

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("miniapp-market-backend", cfg.Debug)

	logger.Info().
		Bool("debug", cfg.Debug).
		Int("port", cfg.Server.Port).
		Msg("Starting Mini App Market Backend")

	ctx := context.Background()

	// Инициализируем базу данных
	postgresClient, err := postgres.NewClient(ctx, cfg.Postgres.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer postgresClient.Close()

	logger.Info().Msg("Database connection established")

	// Инициализируем Redis
	redisClient, err := redis.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	cacheService := cache.NewService(redisClient)

	// Единственный верификатор initData на весь процесс
	verifier := initdata.NewVerifier(cfg.Telegram.BotToken, cfg.InitDataTTL())

	// Репозитории и сервисы
	profiles := profileService.NewProfileService(profileRepo.NewPostgresRepository(postgresClient.Pool()))
	products := productService.NewProductService(productRepo.NewPostgresRepository(postgresClient.Pool()))
	referrals := referralService.NewReferralService(referralRepo.NewPostgresRepository(postgresClient.Pool()), cacheService)

	logger.Info().Msg("Services initialized")

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())

	// CORS: доступ с любого источника, только нужные заголовки
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	setupRoutes(router, verifier, profiles, products, referrals, postgresClient, redisClient)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Ждем сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

func setupRoutes(
	router *gin.Engine,
	verifier *initdata.Verifier,
	profiles profileService.ProfileService,
	products productService.ProductService,
	referrals referralService.ReferralService,
	postgresClient *postgres.Client,
	redisClient *redis.Client,
) {
	v1 := router.Group("/api/v1")
	webappHttp.NewWebAppHandler(verifier, profiles, products, referrals).RegisterRoutes(v1)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "miniapp-market-backend",
		})
	})

	// Liveness probe
	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Readiness probe
	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := postgresClient.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unready", "error": "postgres unavailable"})
			return
		}

		if err := redisClient.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unready", "error": "redis unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "miniapp-market-backend",
		})
	})
}
