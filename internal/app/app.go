package app

import (
	"database/sql"
	"errors"
	"fmt"

	"eventomir_backend/internal/config"
	"eventomir_backend/internal/email"
	"eventomir_backend/internal/handlers"
	"eventomir_backend/internal/logger"
	"eventomir_backend/internal/middleware"
	"eventomir_backend/internal/models"
	"eventomir_backend/internal/repositories"
	"eventomir_backend/internal/routes"
	"eventomir_backend/internal/services"
	"eventomir_backend/internal/validator"
	"eventomir_backend/ws"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB, sqlDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full engine. Integration tests call it directly
// against a test database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) *gin.Engine {
	wsManager := ws.NewManager()
	go wsManager.Run()
	wsHandler := ws.NewHandler(wsManager, cfg)

	serviceContainer := initializeServices(cfg, gormDB, wsManager)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, emitter services.RealtimeEmitter) *services.ServiceContainer {
	var emailService email.Provider
	provider, err := email.NewSMTPProvider(cfg)
	if err != nil {
		logger.Warn("SMTP not configured, outbound email disabled", "error", err)
		emailService = &MockEmailProvider{}
	} else {
		emailService = provider
	}

	repos := services.RepositorySet{
		Users:         repositories.NewUserRepository(gormDB),
		Listings:      repositories.NewListingRepository(gormDB),
		Bookings:      repositories.NewBookingRepository(gormDB),
		Partners:      repositories.NewPartnerRepository(gormDB),
		Notifications: repositories.NewNotificationRepository(gormDB),
	}

	return services.NewServiceContainer(repos, emailService, emitter)
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		HealthHandler:       handlers.NewHealthHandler(baseHandler),
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.Auth),
		ListingHandler:      handlers.NewListingHandler(baseHandler, container.Listings),
		BookingHandler:      handlers.NewBookingHandler(baseHandler, container.Bookings),
		PartnerHandler:      handlers.NewPartnerHandler(baseHandler, container.Partners),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.Notifications),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdmin.Email
	adminPassword := cfg.FirstAdmin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Name:         "Administrator",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
