package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/loomline/admin-api/internal/cache"
	"github.com/loomline/admin-api/internal/config"
	"github.com/loomline/admin-api/internal/database"
	"github.com/loomline/admin-api/internal/handler"
	"github.com/loomline/admin-api/internal/middleware"
	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/repository"
	"github.com/loomline/admin-api/internal/service"
	"github.com/loomline/admin-api/internal/utils"
	"github.com/loomline/admin-api/internal/worker"
)

// main is the application entrypoint for the back-office admin API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting admin api")

	utils.InitJWT(cfg.JWTSecret)

	// 3. Connect core database (products, customers, orders, referrals, users)
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Connect promotions database (coupons)
	promoDB, err := database.Connect(&cfg.PromoDB)
	if err != nil {
		log.Error().Err(err).Msg("promotions database connection failed")
		fmt.Fprintf(os.Stderr, "promotions database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer promoDB.Close()

	// 3b. Run migrations on both schemas
	if err := runMigrations(db.DB, "file://migrations/core"); err != nil {
		log.Error().Err(err).Msg("core migration failed")
		fmt.Fprintf(os.Stderr, "core migration failed: %v\n", err)
		os.Exit(1)
	}
	if err := runMigrations(promoDB.DB, "file://migrations/promotions"); err != nil {
		log.Error().Err(err).Msg("promotions migration failed")
		fmt.Fprintf(os.Stderr, "promotions migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3c. Connect to Redis. The dashboard cache is optional; without it every
	// summary request hits the database.
	var summaryCache *cache.SummaryCache
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis connection failed - dashboard cache disabled")
	} else {
		defer redisClient.Close()
		summaryCache = cache.NewSummaryCache(redisClient)
		log.Info().Msg("redis connected successfully")
	}

	// 4. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)
	couponRepo := repository.NewCouponRepository(promoDB)

	// 5. Initialize services
	authSvc := service.NewAuthService(adminRepo)
	orderSvc := newOrderService(orderRepo, productRepo, summaryCache)
	dashboardSvc := newDashboardService(dashboardRepo, summaryCache)

	uploadSvc, err := service.NewUploadService(&cfg.S3)
	if err != nil {
		log.Error().Err(err).Msg("upload service initialization failed")
		os.Exit(1)
	}

	// 6. Initialize handlers
	loginLimiter := middleware.NewInvalidAuthRateLimiter()
	handlers := &Handlers{
		Health:    handler.NewHealthHandler(db, redisClient),
		Auth:      handler.NewAuthHandler(authSvc, loginLimiter),
		Product:   handler.NewProductHandler(productRepo),
		Order:     handler.NewOrderHandler(orderSvc, orderRepo),
		Customer:  handler.NewCustomerHandler(customerRepo),
		Coupon:    handler.NewCouponHandler(couponRepo),
		Referral:  handler.NewReferralHandler(referralRepo),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Upload:    handler.NewUploadHandler(uploadSvc),
	}

	// 7. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 9. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 10. Start workers
	go worker.NewCouponExpiryWorker(couponRepo, cfg.Worker.CouponExpiryInterval).Start(ctx)

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop workers
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// newOrderService wires the order service, avoiding a typed-nil interface
// when the cache is absent.
func newOrderService(orders *repository.OrderRepository, catalog *repository.ProductRepository, summaryCache *cache.SummaryCache) *service.OrderService {
	var invalidator service.SummaryInvalidator
	if summaryCache != nil {
		invalidator = summaryCache
	}
	return service.NewOrderService(orders, catalog, invalidator)
}

func newDashboardService(store *repository.DashboardRepository, summaryCache *cache.SummaryCache) *service.DashboardService {
	var c service.SummaryCache
	if summaryCache != nil {
		c = summaryCache
	}
	return service.NewDashboardService(store, c)
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Order     *handler.OrderHandler
	Customer  *handler.CustomerHandler
	Coupon    *handler.CouponHandler
	Referral  *handler.ReferralHandler
	Dashboard *handler.DashboardHandler
	Upload    *handler.UploadHandler
}

// setupRoutes registers all routes under /api/admin.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	inventoryRoles := middleware.RequireRole(models.RoleSuperAdmin, models.RoleInventoryManager)
	orderRoles := middleware.RequireRole(models.RoleSuperAdmin, models.RoleOrderManager)

	api := router.Group("/api/admin")

	// Public endpoints
	api.GET("/health", handlers.Health.GetHealth)
	api.POST("/auth/login", handlers.Auth.Login)

	// Storefront order intake
	api.POST("/orders", handlers.Order.Create)

	// Coupon and referral endpoints are consumed by the storefront as well
	// as the admin UI and carry no auth, matching the deployed surface.
	api.GET("/coupons", handlers.Coupon.List)
	api.POST("/coupons", handlers.Coupon.Create)
	api.PUT("/coupons/:id", handlers.Coupon.Update)
	api.DELETE("/coupons/:id", handlers.Coupon.Delete)

	api.GET("/referral-codes", handlers.Referral.ListCodes)
	api.GET("/referral-codes/:id", handlers.Referral.GetCodeByUser)
	api.POST("/referral-codes", handlers.Referral.CreateCode)
	api.PUT("/referral-codes/:id", handlers.Referral.UpdateCode)
	api.DELETE("/referral-codes/:id", handlers.Referral.DeleteCode)
	api.GET("/referral-usage", handlers.Referral.ListUsage)
	api.PUT("/referral-usage/:id/reward", handlers.Referral.MarkRewardApplied)

	// Authenticated back-office endpoints
	auth := api.Group("")
	auth.Use(jwtMiddleware.Handle())
	{
		auth.GET("/products", handlers.Product.List)
		auth.GET("/products/paginated", handlers.Product.ListPaginated)
		auth.GET("/products/low-stock", inventoryRoles, handlers.Product.LowStock)
		auth.GET("/products/:id", handlers.Product.Get)
		auth.POST("/products", inventoryRoles, handlers.Product.Create)
		auth.PUT("/products/:id", inventoryRoles, handlers.Product.Update)
		auth.DELETE("/products/:id", inventoryRoles, handlers.Product.Delete)

		auth.GET("/orders", handlers.Order.List)
		auth.GET("/orders/paginated", handlers.Order.ListPaginated)
		auth.GET("/orders/:id", handlers.Order.Get)
		auth.PATCH("/orders/:id/status", orderRoles, handlers.Order.UpdateStatus)

		auth.GET("/customers", handlers.Customer.List)
		auth.GET("/customers/paginated", handlers.Customer.ListPaginated)
		auth.GET("/customers/:id", handlers.Customer.Get)
		auth.POST("/customers", handlers.Customer.Create)

		auth.GET("/dashboard/summary", handlers.Dashboard.Summary)
		auth.POST("/upload", inventoryRoles, handlers.Upload.Upload)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB, sourceURL string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
