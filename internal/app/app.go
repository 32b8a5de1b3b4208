package app

import (
	"fmt"

	"github.com/sahithdaddla/veera20-Job-Applications/internal/config"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/convert"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/database"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/handlers"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/logger"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/middleware"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/repositories"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/routes"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/services"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/storage"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Run loads configuration, connects the database and serves until failure.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	router, err := SetupRouter(cfg, db)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full dependency graph and the gin engine. Split
// from Run so tests can mount the router on httptest with an injected
// transaction.
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	store, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "path", cfg.Storage.BasePath)

	converter := convert.New(cfg.Converter.SofficeBin, cfg.Converter.TempDir)
	policies := services.DefaultFilePolicies(cfg.Upload.MaxApplicationFileSize, cfg.Upload.MaxOfferFileSize)

	appRepo := repositories.NewApplicationRepository()
	offerRepo := repositories.NewOfferDocumentRepository()

	applicationService := services.NewApplicationService(appRepo, store, policies)
	offerService := services.NewOfferService(appRepo, offerRepo, store, converter, policies)

	baseHandler := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, applicationService),
		OfferHandler:       handlers.NewOfferHandler(baseHandler, offerService),
	}

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	routes.RegisterRoutes(router, appHandlers, cfg.Storage.BasePath)

	return router, nil
}
