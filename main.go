// Package main provides the main entry point for the hobli missed-call notification service
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/handlers"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/middleware"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/router"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/scheduler"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/services"
	businessflow "github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/business_flow"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/config"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/repository"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logCloser := initializeLogging(cfg.Logging)
	if logCloser != nil {
		defer logCloser.Close()
	}

	log.Printf("Starting hobli notify %s (%s, env=%s)...", cfg.Deployment.Version, cfg.Deployment.CommitHash, cfg.Deployment.Environment)

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := app.router.Start(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// initializeLogging points the standard logger at stdout, a rotating file, or both.
// The returned closer is nil when no file is involved.
func initializeLogging(cfg config.LoggingConfig) io.Closer {
	log.SetFlags(log.LstdFlags | log.LUTC)

	if cfg.Output == "stdout" {
		log.SetOutput(os.Stdout)
		return nil
	}

	file := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  false,
	}

	if cfg.Output == "both" {
		log.SetOutput(io.MultiWriter(os.Stdout, file))
	} else {
		log.SetOutput(file)
	}
	return file
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established (db=%d)", cfg.RedisDB)
	return rc, nil
}

// initializeStore opens the configured record store. The sweeper is nil unless
// the store keeps expired rows around.
func initializeStore(cfg *config.ProductionConfig) (repository.KVStore, scheduler.ExpiredRecordSweeper, []func(), error) {
	switch cfg.Store.Provider {
	case "redis":
		rc, err := initializeCache(cfg.Cache)
		if err != nil {
			return nil, nil, nil, err
		}
		return repository.NewRedisKVStore(rc), nil, []func(){func() { _ = rc.Close() }}, nil
	case "postgres":
		db, err := initializeDatabase(cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		pg := repository.NewPostgresKVStore(db)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := pg.Migrate(ctx); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to migrate record store: %w", err)
		}
		return pg, pg, nil, nil
	default:
		log.Println("Using in-process record store; data is lost on restart")
		return repository.NewMemoryKVStore(cfg.Cache.CleanupInterval), nil, nil, nil
	}
}

// initializeGateway builds the gateway client once; it is shared by every flow
func initializeGateway(cfg config.GatewayConfig) services.GatewayClient {
	switch cfg.Provider {
	case "mock":
		log.Println("Using mock gateway client; no SMS will leave this process")
		return services.NewMockGatewayClient()
	default:
		return services.NewTwilioClient(&cfg, &http.Client{Timeout: cfg.Timeout})
	}
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	rawStore, sweeper, stopFuncs, err := initializeStore(cfg)
	if err != nil {
		return nil, err
	}

	// Stop the maintenance loop before closing the store
	maintenance := scheduler.NewMaintenanceScheduler(rawStore, sweeper, nil, cfg.Cache.CleanupInterval)
	stopFuncs = append([]func(){maintenance.Start(context.Background())}, stopFuncs...)

	store := repository.WithKeyPrefix(rawStore, cfg.Store.KeyPrefix)

	gateway := initializeGateway(cfg.Gateway)
	if err := gateway.Ready(); err != nil {
		log.Printf("Gateway client not ready, dependent endpoints will fail fast: %v", err)
	}

	tokenService, err := services.NewTokenService(
		cfg.JWT.TokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Initialize repositories
	subscriberRepo := repository.NewSubscriberRepository(store)
	rateRepo := repository.NewRateRepository(store)
	markerRepo := repository.NewDedupeMarkerRepository(store)
	logRepo := repository.NewNotificationLogRepository(store)
	sessionRepo := repository.NewRelaySessionRepository(store)

	// Initialize business flows
	resolver := businessflow.NewSubscriberResolver(subscriberRepo)
	dedupe := businessflow.NewDedupeGuard(markerRepo, cfg.Notification.DedupeWindow, utils.UTCNow)
	tracker := businessflow.NewDeliveryTracker(logRepo, dedupe, utils.UTCNow)
	notificationFlow := businessflow.NewNotificationFlow(
		dedupe,
		resolver,
		businessflow.NewRateReader(rateRepo),
		businessflow.NewMessageComposer(cfg.Notification.Helpline, cfg.Notification.MaxMessageLength),
		services.NewDispatchClient(gateway, &cfg.Gateway),
		tracker,
	)
	otpFlow := businessflow.NewOTPFlow(gateway, &cfg.Gateway, resolver, tokenService, cfg.JWT.TokenTTL)
	relayFlow := businessflow.NewRelaySessionFlow(gateway, &cfg.Gateway, sessionRepo, cfg.Notification.RelaySessionTTL, utils.UTCNow)
	diagnosticFlow := businessflow.NewDiagnosticFlow(&cfg.Gateway, gateway, store, utils.UTCNow)

	// Initialize handlers
	h := router.Handlers{
		Telephony: handlers.NewTelephonyHandler(notificationFlow),
		SMS:       handlers.NewSMSHandler(notificationFlow, diagnosticFlow),
		OTP:       handlers.NewOTPHandler(otpFlow),
		Relay:     handlers.NewRelayHandler(relayFlow),
	}

	r := router.NewFiberRouter(cfg, h, middleware.NewAuthMiddleware(tokenService))

	return &Application{
		router:    r,
		config:    cfg,
		server:    r.GetApp(),
		stopFuncs: stopFuncs,
	}, nil
}
