package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"artshop/internal/background"
	"artshop/internal/config"
	"artshop/internal/database"
	"artshop/internal/handlers"
	"artshop/internal/middleware"
	"artshop/internal/notify"
	"artshop/internal/repositories"
	"artshop/internal/services"
	"artshop/pkg/rabbitmq"
)

// App is the HTTP server plus everything that has to be drained or closed
// when it stops.
type App struct {
	Fiber *fiber.App
	Tasks *background.Group

	db     *gorm.DB
	events *rabbitmq.Client
}

// NewApp opens the database and wires repositories, services and handlers.
// RabbitMQ and OAuth are optional; SMTP is skipped when no sender is set.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret, err = randomSecret()
		if err != nil {
			return nil, err
		}
		log.Println("Warning: JWT_SECRET is not set; sessions will not survive a restart")
	}

	a := &App{
		Tasks: background.NewGroup(cfg.EmailTimeout),
		db:    db,
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: order events disabled: %v", err)
		} else {
			a.events = mq
			publisher = mq
		}
	}

	var mailer notify.Mailer
	if cfg.MailFrom != "" {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:         cfg.SMTPHost,
			Port:         cfg.SMTPPort,
			Username:     cfg.SMTPUser,
			Password:     cfg.SMTPPass,
			From:         cfg.MailFrom,
			FromName:     cfg.MailFromName,
			ContactPhone: cfg.ContactPhone,
		})
	} else {
		log.Println("Warning: MAIL_FROM and SMTP_USER are empty; order confirmation emails are disabled")
	}
	notifier := notify.NewWebhookNotifier(cfg.NotifyWebhookURL, cfg.NotifyAPIKey, cfg.NotifyTimeout)

	var provider services.IdentityProvider
	if cfg.OAuthEnabled() {
		provider, err = services.NewOIDCProvider(ctx, services.OIDCConfig{
			IssuerURL:    cfg.OAuthIssuerURL,
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			RedirectURL:  cfg.OAuthRedirectURL,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	userRepo := repositories.NewGORMUserRepository(db)
	printRepo := repositories.NewGORMPrintRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret, cfg.AppID, cfg.OwnerOpenID)
	orderService := services.NewOrderService(services.OrderDeps{
		Orders:    repositories.NewGORMOrderRepository(db),
		Notifier:  notifier,
		Mailer:    mailer,
		Tasks:     a.Tasks,
		Events:    publisher,
		RefPrefix: cfg.OrderRefPrefix,
	})
	inquiryService := services.NewInquiryService(repositories.NewGORMInquiryRepository(db), notifier)
	catalogService := services.NewCatalogService(
		repositories.NewGORMArtworkRepository(db), printRepo, repositories.NewGORMArtistRepository(db))

	app := fiber.New(fiber.Config{
		AppName:      "artshop",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	if cfg.CORSOrigin != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigin,
			AllowCredentials: cfg.CORSOrigin != "*",
		}))
	}
	app.Use(middleware.Session(authService))
	app.Use(middleware.SanitizeInput())

	handlers.Set{
		Orders:    handlers.NewOrderHandler(orderService),
		Inquiries: handlers.NewInquiryHandler(inquiryService),
		Catalog:   handlers.NewCatalogHandler(catalogService),
		Auth:      handlers.NewAuthHandler(authService, provider),
		System:    handlers.NewSystemHandler(notifier),
	}.Mount(app)

	a.Fiber = app
	return a, nil
}

// Close releases the broker connection and the database pool.
func (a *App) Close() {
	if a.events != nil {
		if err := a.events.Close(); err != nil {
			log.Printf("Error closing RabbitMQ client: %v", err)
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
}

// errorHandler keeps unmatched routes and panics in the API's JSON shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"message": "Request failed",
		"error":   err.Error(),
	})
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
