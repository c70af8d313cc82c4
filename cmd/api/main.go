package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"homevista_backend/internal/controller"
	"homevista_backend/internal/middleware"
	"homevista_backend/internal/model"
	"homevista_backend/pkg/config"
	"homevista_backend/pkg/cron"
	"homevista_backend/pkg/database"
	"homevista_backend/pkg/media/cloudinary"
	"homevista_backend/pkg/seed"
	"homevista_backend/pkg/utils/storage"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/login", controller.Login)

	// Public Routes
	api.Get("/properties", controller.ListProperties)
	api.Get("/properties/:slug", controller.GetPropertyBySlug)
	api.Post("/properties/:property_id/inquiries", controller.CreateInquiry)

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)

	// Admin property routes
	admin := api.Group("/admin", middleware.AuthMiddleware())
	admin.Get("/properties", controller.ListAdminProperties)
	admin.Post("/properties", controller.CreateProperty)
	admin.Put("/properties/:id", controller.UpdateProperty)
	admin.Delete("/properties/:id", controller.DeleteProperty)

	// Media upload routes
	admin.Post("/uploads/images", controller.UploadImages)
	admin.Delete("/uploads/images", controller.DeleteImage)

	// Dashboard routes
	admin.Get("/dashboard/summary", controller.GetDashboardSummary)
	admin.Get("/dashboard/snapshots", controller.ListAnalyticsSnapshots)

	// Inquiry triage routes
	admin.Get("/inquiries", controller.GetInquiries)
	admin.Put("/inquiries/:id/status", controller.UpdateInquiryStatus)
	admin.Put("/inquiries/:id/read", controller.MarkInquiryAsRead)

	// Settings routes
	admin.Get("/settings/profile", controller.GetProfile)
	admin.Put("/settings/profile", controller.UpdateProfile)
	admin.Post("/settings/logo", controller.UploadLogo)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Property{},
		&model.PropertyImage{},
		&model.Amenity{},
		&model.Inquiry{},
		&model.AnalyticsSnapshot{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	seed.SeedAdminUser(database.GetDB(), cfg.Admin.Email, cfg.Admin.Password)
	seed.SeedDefaultProperties(database.GetDB())

	controller.InitUploadController(cloudinary.New(cloudinary.Config{
		CloudName:    cfg.Cloudinary.CloudName,
		APIKey:       cfg.Cloudinary.APIKey,
		APISecret:    cfg.Cloudinary.APISecret,
		UploadPreset: cfg.Cloudinary.UploadPreset,
		Folder:       cfg.Cloudinary.Folder,
	}))
	controller.InitSettingsController(storage.NewBrandingStore(cfg.R2))

	cron.InitAnalyticsSnapshotCron()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
