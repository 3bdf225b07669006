package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "parkspot-backend/internal/api/http"
	"parkspot-backend/internal/cache"
	"parkspot-backend/internal/config"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/repository/postgres"
	"parkspot-backend/internal/security"
	"parkspot-backend/internal/service"
	"parkspot-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ParkSpot Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Booking configuration", "timezone", cfg.BookingLocation().String())

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize listing cache. A nil ListingCache disables caching.
	var listingCache service.ListingCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis)
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			logger.Warn("Redis unreachable, listing reads will hit the database until it recovers", "addr", cfg.Redis.Addr, "error", err)
		} else {
			logger.Info("Redis connection established", "addr", cfg.Redis.Addr)
		}
		cancel()
		listingCache = redisCache
	} else {
		logger.Info("Redis not configured, listing cache disabled")
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	// Initialize Storage Service
	storageService, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Error("Failed to initialize storage", "type", cfg.Storage.Type, "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	var localStore storage.LocalStore
	if ls, ok := storageService.(storage.LocalStore); ok {
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		localStore = ls
	}

	// Initialize Services
	loc := cfg.BookingLocation()
	services := httpapi.Services{
		Bookings:     service.NewBookingService(store.BookingRepository, store.SpotRepository, store.AvailabilityRepository, listingCache, loc, nil),
		Reviews:      service.NewReviewService(store.ReviewRepository, store.BookingRepository, listingCache),
		Availability: service.NewAvailabilityService(store.AvailabilityRepository, store.SpotRepository, listingCache),
		Listings:     service.NewListingService(store.SpotRepository, store.ImageRepository, store.EventRepository, storageService, listingCache, loc),
		Host:         service.NewHostService(store.BookingRepository, store.ReviewRepository, store.SpotRepository, listingCache),
		Images:       service.NewImageService(store.ImageRepository, store.SpotRepository, storageService, listingCache, cfg.UploadURLExpiry()),
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Services:     services,
		TokenManager: tokenManager,
		LocalStore:   localStore,
		DB:           db,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
