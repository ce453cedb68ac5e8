package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/cache"
	"github.com/segyhp/lending-engine/internal/config"
	"github.com/segyhp/lending-engine/internal/handler"
	"github.com/segyhp/lending-engine/internal/logger"
	"github.com/segyhp/lending-engine/internal/repository"
	"github.com/segyhp/lending-engine/internal/service"
	"github.com/segyhp/lending-engine/pkg/response"
	"github.com/segyhp/lending-engine/pkg/retry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg.Logging, os.Stdout)

	// Initialize database
	db, err := repository.Open(context.Background(), cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	// Initialize Redis. The API keeps serving from the database when it is down.
	rdb, offerCache := initCache(cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	store := repository.NewStore(db, log)
	exec := retry.New(cfg.Retry.MaxRetries, cfg.Retry.InitialDelay, log)

	// Initialize services
	lendingService := service.NewLendingService(store, exec, offerCache, log)
	ledger := service.NewPointsLedger(store, exec, log)
	profileService := service.NewProfileService(store, exec, ledger, cfg.Business.ProfileUpdatePoints, log)

	// Initialize handlers
	router := handler.NewRouter(
		handler.NewLendingHandler(lendingService, log),
		handler.NewLedgerHandler(profileService, ledger, log),
		handler.NewHealthHandler(store, rdb, cfg.Health.Timeout, log),
	)
	router.Use(response.LoggingMiddleware(log))
	router.Use(response.CORSMiddleware)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.WithField("addr", server.Addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exited")
}

// initCache returns a nil client and a nil cache when Redis cannot be reached.
func initCache(cfg *config.Config, log *logrus.Logger) (*redis.Client, service.OfferCache) {
	rdb, err := cache.OpenRedis(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, offer cache disabled")
		return nil, nil
	}
	return rdb, cache.NewOfferCache(rdb, cfg.Cache.OfferTTL)
}
