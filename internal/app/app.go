package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tourbook/internal/auth"
	"tourbook/internal/config"
	"tourbook/internal/email"
	"tourbook/internal/handlers"
	"tourbook/internal/imageprocessor"
	"tourbook/internal/logger"
	"tourbook/internal/middleware"
	"tourbook/internal/models"
	"tourbook/internal/payment"
	"tourbook/internal/routes"
	"tourbook/internal/services"
	"tourbook/internal/storage"
	"tourbook/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from gorm", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := migrate(gormDB); err != nil {
		logger.Fatal("migration failed", "error", err)
	}
	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("failed to seed first admin user", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter wires storage, services, handlers and routes onto a fresh
// engine. Split from Run so tests can build the full router in-process.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	store, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}

	tokens := auth.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLDays)*24*time.Hour)

	var mailer email.Mailer
	if cfg.Email.SMTPHost != "" {
		mailer = email.NewSMTPMailer(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.Username,
			Password:  cfg.Email.Password,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
	} else {
		logger.Warn("no SMTP host configured, outgoing mail is logged only")
		mailer = email.NewLogMailer()
	}

	provider := payment.NewProvider(
		cfg.Payment.MerchantID,
		cfg.Payment.Secret,
		cfg.Payment.WebhookSecret,
		cfg.Payment.CheckoutURL,
		"",
	)

	repos := services.NewRepositories()
	svcs := services.NewServiceContainer(repos, tokens, mailer, provider)

	uploads := handlers.NewUploads(
		imageprocessor.NewProcessor(cfg.Upload.ImageQuality),
		store,
	)
	appHandlers := handlers.NewAppHandlers(svcs, repos, validator.New(), uploads)

	router := newEngine(cfg, gormDB)
	router.Static("/img", cfg.Storage.BasePath+"/img")

	routes.Register(router, appHandlers, routes.Options{
		Tokens:     tokens,
		Users:      repos.Users,
		AuthPerSec: cfg.RateLimit.AuthPerSecond,
		AuthBurst:  cfg.RateLimit.AuthBurst,
	})
	return router
}

func newEngine(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging())
	router.Use(middleware.CORS())
	router.Use(middleware.DB(db))
	return router
}

func migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults need the extension in place first
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("create uuid extension: %w", err)
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Tour{},
		&models.TourLocation{},
		&models.TourStartDate{},
		&models.Review{},
		&models.Booking{},
	)
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var admin models.User
	result := db.Where("email = ?", cfg.FirstAdminEmail).First(&admin)
	if result.Error == nil {
		logger.Info("admin user already exists", "email", cfg.FirstAdminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check for admin user: %w", result.Error)
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	logger.Warn("no admin user found, creating first admin", "email", cfg.FirstAdminEmail)
	return db.Create(&models.User{
		Name:         "Administrator",
		Email:        cfg.FirstAdminEmail,
		Role:         models.UserRoleAdmin,
		PasswordHash: hash,
		Active:       true,
	}).Error
}
