package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog/internal/apperrors"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/validation"
	"catalog/pkg/cache"
	"catalog/pkg/mailer"
	"catalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("JWT_SECRET", "change_me")
	viper.SetDefault("RESET_BASE_URL", "http://localhost:3000")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	// Postgres when a DSN is configured, in-memory sqlite otherwise so the
	// service can run standalone.
	var dialector gorm.Dialector
	if dsn := viper.GetString("DATABASE_DSN"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		log.Println("DATABASE_DSN not set, using in-memory sqlite")
		dialector = sqlite.Open("file::memory:?cache=shared")
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.UploadFile{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, catalog events disabled")
	}

	// --- Redis cache (optional) ---
	var listCache *cache.Cache
	if redisAddr := viper.GetString("REDIS_ADDR"); redisAddr != "" {
		listCache, err = cache.New(redisAddr)
		if err != nil {
			log.Fatalf("Failed to initialize redis cache: %v", err)
		}
		defer listCache.Close()
	} else {
		log.Println("REDIS_ADDR not set, product list cache disabled")
	}

	// --- Mailer (optional) ---
	var mail *mailer.Mailer
	if smtpHost := viper.GetString("SMTP_HOST"); smtpHost != "" {
		mail = mailer.New(mailer.Config{
			Host: smtpHost,
			Port: viper.GetInt("SMTP_PORT"),
			User: viper.GetString("SMTP_USER"),
			Pass: viper.GetString("SMTP_PASS"),
			From: viper.GetString("SMTP_FROM"),
		})
	} else {
		log.Println("SMTP_HOST not set, password reset mail disabled")
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	uploadRepo := repositories.NewGORMUploadFileRepository(db)

	// --- Services ---
	validate := validation.New()
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"), viper.GetString("RESET_BASE_URL"), mail)
	productService := services.NewProductService(productRepo, uploadRepo, listCache, mqClient)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, validate)
	productHandler := handlers.NewProductHandler(productService, validate)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		ErrorHandler: apperrors.Handler,
	})
	app.Use(logger.New()) // Request logger

	api := app.Group("/api")

	// Auth routes are public; everything under /products requires a token.
	authHandler.RegisterRoutes(api)
	protected := api.Group("", middleware.AuthRequired(authService))
	productHandler.RegisterRoutes(protected)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Catalog event consumer ---
	if mqClient != nil {
		log.Println("Starting catalog event consumer...")
		if consumerErr := mqClient.ConsumeEvents(func(msg amqp.Delivery) error {
			log.Printf("Catalog event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}); consumerErr != nil {
			log.Printf("Failed to start catalog event consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
