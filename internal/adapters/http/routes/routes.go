package routes

import (
	"log"

	"loco-verify/internal/adapters/http/handlers"
	"loco-verify/internal/adapters/http/middleware"
	"loco-verify/internal/adapters/persistence/repositories"
	"loco-verify/internal/adapters/storage"
	"loco-verify/internal/config"
	"loco-verify/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	licenseRepo := repositories.NewLicenseRepository(db)

	// Document storage
	store, err := storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to initialize upload storage: %v", err)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	licenseService := services.NewLicenseService(licenseRepo, userRepo)
	vendorService := services.NewVendorService(userRepo, licenseRepo)
	uploadService := services.NewUploadService(licenseRepo, store)
	statsService := services.NewStatsService(licenseRepo, userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	licenseHandler := handlers.NewLicenseHandler(licenseService, uploadService, cfg)
	vendorHandler := handlers.NewVendorHandler(vendorService)
	adminHandler := handlers.NewAdminHandler(licenseService, statsService)
	uploadHandler := handlers.NewUploadHandler(uploadService, cfg)
	dashboardHandler := handlers.NewDashboardHandler(statsService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Stored documents
	app.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, licenseHandler,
		vendorHandler, adminHandler, uploadHandler, dashboardHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	licenseHandler *handlers.LicenseHandler,
	vendorHandler *handlers.VendorHandler,
	adminHandler *handlers.AdminHandler,
	uploadHandler *handlers.UploadHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// API info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public, stricter rate limit)
	auth := router.Group("/auth")
	auth.Post("/signup", middleware.AuthRateLimiter(), authHandler.Signup)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// License routes (authenticated)
	licenses := router.Group("/licenses", middleware.AuthMiddleware(cfg))
	licenses.Get("/", licenseHandler.List)
	licenses.Get("/my", licenseHandler.MyLicenses)
	licenses.Post("/apply", licenseHandler.Apply)
	licenses.Get("/:id", licenseHandler.GetByID)
	licenses.Post("/:id/renew", licenseHandler.Renew)
	licenses.Get("/:id/renew", licenseHandler.RenewalEligibility)

	// License admin routes
	licenses.Post("/", middleware.AdminOnly(), licenseHandler.Create)
	licenses.Patch("/:id", middleware.AdminOnly(), licenseHandler.Update)
	licenses.Delete("/:id", middleware.AdminOnly(), licenseHandler.Delete)
	licenses.Put("/:id/approve", middleware.AdminOnly(), licenseHandler.Approve)
	licenses.Put("/:id/reject", middleware.AdminOnly(), licenseHandler.Reject)

	// Admin review console
	admin := router.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	admin.Get("/licenses", adminHandler.ListLicenses)
	admin.Post("/licenses", adminHandler.BulkReview)

	// Vendor management (admin only)
	vendors := router.Group("/vendors", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Get("/:id/licenses", vendorHandler.Licenses)
	vendors.Patch("/:id", vendorHandler.Update)
	vendors.Delete("/:id", vendorHandler.Delete)

	// Document uploads (admin only)
	uploads := router.Group("/uploads", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	uploads.Post("/", uploadHandler.Upload)

	// Dashboards
	dashboard := router.Group("/dashboard", middleware.AuthMiddleware(cfg))
	dashboard.Get("/admin", middleware.AdminOnly(), dashboardHandler.Admin)
	dashboard.Get("/vendor", dashboardHandler.Vendor)
}
