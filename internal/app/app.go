package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"propmatch_backend/internal/auth"
	"propmatch_backend/internal/cache"
	"propmatch_backend/internal/config"
	"propmatch_backend/internal/database"
	"propmatch_backend/internal/email"
	"propmatch_backend/internal/handlers"
	"propmatch_backend/internal/logger"
	"propmatch_backend/internal/middleware"
	"propmatch_backend/internal/models"
	"propmatch_backend/internal/repositories"
	"propmatch_backend/internal/routes"
	"propmatch_backend/internal/services"
	"propmatch_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// Options overrides the backing services built from config. Nil fields are
// derived from config.
type Options struct {
	Mailer email.Provider
	Cache  cache.Cache
}

// App is the assembled HTTP service.
type App struct {
	cfg      *config.Config
	db       *gorm.DB
	gate     *Gate
	cache    cache.Cache
	services *services.ServiceContainer
	router   *gin.Engine

	bootstrapOnce sync.Once
	bootstrapErr  error
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	db, err := database.Open(database.Options{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Env:    cfg.Server.Env,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := New(cfg, db, Options{Cache: initializeCache(ctx, cfg)})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// The listener is up while startup work runs; the gate answers 503 until it finishes.
	go func() {
		if err := a.Bootstrap(ctx); err != nil {
			logger.Error("Startup failed", "error", err)
			stop()
		}
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server startup error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	if err := a.Close(shutdownCtx); err != nil {
		logger.Error("Resource cleanup error", "error", err)
	}
	logger.Info("Server stopped")
}

// New wires services, handlers and the router. The gate starts closed.
func New(cfg *config.Config, db *gorm.DB, opts Options) *App {
	if opts.Mailer == nil {
		opts.Mailer = initializeMailer(cfg)
	}
	if opts.Cache == nil {
		opts.Cache = cache.Noop{}
	}

	a := &App{
		cfg:   cfg,
		db:    db,
		gate:  &Gate{},
		cache: opts.Cache,
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.TokenTTL())
	a.services = services.NewServiceContainer(services.Dependencies{
		Tokens:   tokens,
		Mailer:   opts.Mailer,
		Cache:    opts.Cache,
		CacheTTL: cfg.CacheTTL(),
	})

	appHandlers := initializeHandlers(a.services, tokens)
	a.router = initializeGinRouter(cfg, db)
	routes.RegisterRoutes(a.router, appHandlers, a.gate)

	return a
}

func (a *App) Router() *gin.Engine { return a.router }

func (a *App) Gate() *Gate { return a.gate }

// Bootstrap migrates the schema, seeds the first admin and the suburb table,
// then opens the gate. It runs at most once; later calls return the first result.
func (a *App) Bootstrap(ctx context.Context) error {
	a.bootstrapOnce.Do(func() {
		a.bootstrapErr = a.bootstrap(ctx)
	})
	return a.bootstrapErr
}

func (a *App) bootstrap(ctx context.Context) error {
	db := a.db.WithContext(ctx)

	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	if err := seedFirstAdmin(db, a.cfg); err != nil {
		return fmt.Errorf("seed first admin: %w", err)
	}
	if _, err := database.SeedSuburbs(ctx, a.db, repositories.NewLocationRepository(), a.cfg.Seed.SuburbsCSV); err != nil {
		return fmt.Errorf("seed suburbs: %w", err)
	}

	a.gate.Open()
	logger.Info("Startup complete, accepting traffic")
	return nil
}

// Close waits for in-flight notifications and releases the cache and the pool.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.services.NotificationService.Wait(ctx); err != nil {
		errs = append(errs, fmt.Errorf("notifications: %w", err))
	}
	if err := a.cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("cache: %w", err))
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initializeMailer(cfg *config.Config) email.Provider {
	smtpCfg := &email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		Timeout:   email.DefaultConfig().Timeout,
	}
	if !smtpCfg.Enabled() {
		logger.Warn("SMTP is not configured, outgoing mail is logged and dropped")
		return &MockEmailProvider{}
	}

	templates, err := email.NewDefaultTemplateManager()
	if err != nil {
		logger.Error("Failed to load mail templates, falling back to mock mailer", "error", err)
		return &MockEmailProvider{}
	}

	provider := email.NewSMTPProvider(smtpCfg, templates)
	if err := provider.Validate(); err != nil {
		logger.Error("Invalid SMTP configuration, falling back to mock mailer", "error", err)
		return &MockEmailProvider{}
	}
	logger.Info("SMTP mailer configured", "host", smtpCfg.Host)
	return provider
}

// initializeCache connects to Redis when configured. The cache is optional:
// any failure degrades to direct store reads.
func initializeCache(ctx context.Context, cfg *config.Config) cache.Cache {
	if cfg.Redis.Addr == "" {
		logger.Info("Redis not configured, location lists are read from the database")
		return cache.Noop{}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c, err := cache.NewRedisCache(pingCtx, cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   "propmatch:",
	})
	if err != nil {
		logger.Warn("Redis unavailable, continuing without cache", "error", err)
		return cache.Noop{}
	}
	logger.Info("Redis cache connected", "addr", cfg.Redis.Addr)
	return c
}

func initializeHandlers(svc *services.ServiceContainer, tokens *auth.TokenManager) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, middleware.AuthMiddleware(tokens))

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, svc.AuthService),
		JobHandler:          handlers.NewJobHandler(baseHandler, svc.JobService, svc.MatchingService),
		ProfessionalHandler: handlers.NewProfessionalHandler(baseHandler, svc.ProfessionalService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, svc.AdminService),
		LocationHandler:     handlers.NewLocationHandler(baseHandler, svc.LocationService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the configured admin once. An existing account with
// that email is left as it is.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Seed.FirstAdminEmail
	adminPassword := cfg.Seed.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}
	if err := auth.ValidatePassword(adminPassword); err != nil {
		return err
	}

	userRepo := repositories.NewUserRepository()

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	exists, err := userRepo.ExistsByEmail(tx, adminEmail)
	if err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}
	if exists {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Role:         models.UserRoleAdmin,
		FirstName:    "Platform",
		LastName:     "Admin",
	}
	if err := userRepo.Create(tx, newAdmin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return tx.Commit().Error
}
