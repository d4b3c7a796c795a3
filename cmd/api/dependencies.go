package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/FACorreiaa/statement-importer/internal/domain/user"
	userhandler "github.com/FACorreiaa/statement-importer/internal/domain/user/handler"

	importhandler "github.com/FACorreiaa/statement-importer/internal/domain/import/handler"
	"github.com/FACorreiaa/statement-importer/internal/domain/import/pdftext"
	importrepo "github.com/FACorreiaa/statement-importer/internal/domain/import/repository"
	importservice "github.com/FACorreiaa/statement-importer/internal/domain/import/service"

	"github.com/FACorreiaa/statement-importer/pkg/config"
	"github.com/FACorreiaa/statement-importer/pkg/cron"
	"github.com/FACorreiaa/statement-importer/pkg/db"
	"github.com/FACorreiaa/statement-importer/pkg/interceptors"
	"github.com/FACorreiaa/statement-importer/pkg/metrics"
	"github.com/FACorreiaa/statement-importer/pkg/storage"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	UserRepo   user.UserRepo
	ImportRepo importrepo.ImportRepository

	// Services
	Tokens        *interceptors.TokenVerifier
	Metrics       *metrics.ImportMetrics
	ImportService *importservice.ImportService
	FileStorage   storage.Storage
	Scheduler     *cron.Scheduler

	// Handlers
	UserHandler   *userhandler.UserHandler
	ImportHandler *importhandler.ImportHandler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	// Initialize database
	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	// Initialize repositories
	if err := deps.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}

	// Initialize services
	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	// Initialize handlers
	if err := deps.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initRepositories initializes all repository layer dependencies
func (d *Dependencies) initRepositories() error {
	d.UserRepo = user.NewPostgresUserRepo(d.DB.Pool)
	d.ImportRepo = importrepo.NewPostgresImportRepository(d.DB.Pool)

	d.Logger.Info("repositories initialized")
	return nil
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() error {
	jwtSecret := []byte(d.Config.Auth.JWTSecret)
	if len(jwtSecret) == 0 {
		return fmt.Errorf("jwt secret is required")
	}
	d.Tokens = interceptors.NewTokenVerifier(jwtSecret)

	d.ImportService = importservice.NewImportService(d.ImportRepo, pdftext.Extractor{}, pdftext.Segmenter{}, d.Logger).
		WithOptions(importservice.Options{
			PreviewLines: d.Config.Import.PreviewLines,
			Currency:     d.Config.Import.Currency,
			Region:       d.Config.Import.Region,
			CategoryName: d.Config.Import.CategoryName,
		})

	if d.Config.Observability.MetricsEnabled {
		d.Metrics = metrics.New()
		d.ImportService.WithMetrics(d.Metrics)
	}

	// Archive of uploaded statements, pruned on a schedule
	if d.Config.Storage.ArchiveEnabled {
		fileStorage, err := storage.NewLocalStorage(d.Config.Storage.LocalPath)
		if err != nil {
			return fmt.Errorf("failed to init file storage: %w", err)
		}
		d.FileStorage = fileStorage
		d.Scheduler = cron.NewScheduler(fileStorage, d.Config.Storage.Retention, d.Config.Storage.PruneSchedule, d.Logger)
	}

	d.Logger.Info("services initialized")
	return nil
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() error {
	d.UserHandler = userhandler.NewUserHandler(d.UserRepo, d.Logger)

	var archive importhandler.Archiver
	if d.FileStorage != nil {
		archive = d.FileStorage
	}
	d.ImportHandler = importhandler.NewImportHandler(d.ImportService, archive, d.Logger).
		WithMaxUploadBytes(d.Config.Server.MaxUploadBytes)

	d.Logger.Info("handlers initialized")
	return nil
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.Scheduler != nil {
		<-d.Scheduler.Stop().Done()
	}
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
