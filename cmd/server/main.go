package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"eduhub-records/internal/adapters/http/middleware"
	"eduhub-records/internal/adapters/http/routes"
	"eduhub-records/internal/adapters/messaging"
	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/adapters/persistence/repositories"
	"eduhub-records/internal/config"
	"eduhub-records/internal/core/services"
	"eduhub-records/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"

	_ "eduhub-records/docs" // Swagger docs
)

// @title EduHub Records API
// @version 1.0
// @description Employee and student records for a tutoring institute

// @contact.name API Support

// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Structured logger, also installed as the default for the log package
	l, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("❌ Invalid LOG_LEVEL %q: %v", cfg.LogLevel, err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed lookup vocabularies
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	store := repositories.NewStore(db)

	// Lifecycle events go to Kafka when brokers are configured
	var events services.EventPublisher = services.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := messaging.NewKafkaPublisher(l, cfg.Kafka.Brokers, cfg.Kafka.EventsTopic)
		defer publisher.Close()
		events = publisher
		log.Printf("✅ Publishing lifecycle events to %s", cfg.Kafka.EventsTopic)
	}

	// Initialize services
	employeeService := services.NewEmployeeService(store, events, l)
	employeeService.SetPasswordCost(cfg.Security.BcryptCost)
	studentService := services.NewStudentService(store, events, l)
	analyticsService, err := services.NewAnalyticsService(store, cfg.Analytics.LateAfter, l)
	if err != nil {
		log.Fatalf("❌ Failed to configure analytics: %v", err)
	}

	// Start Cron Service for attendance analytics
	cronService := services.NewCronService(analyticsService, cfg.Analytics.Cron, cfg.Analytics.WindowDays)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "EduHub Records API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, store, routes.Services{
		Employees: employeeService,
		Students:  studentService,
		Analytics: analyticsService,
	}, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
