package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/cache"
	"github.com/segyhp/lending-engine/internal/config"
	"github.com/segyhp/lending-engine/internal/logger"
	"github.com/segyhp/lending-engine/internal/repository"
	"github.com/segyhp/lending-engine/internal/scheduler"
	"github.com/segyhp/lending-engine/internal/service"
	"github.com/segyhp/lending-engine/pkg/retry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg.Logging, os.Stdout)
	log.Info("Starting lending scheduler...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	var offerCache service.OfferCache
	if rdb, err := cache.OpenRedis(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.WithError(err).Warn("Redis unavailable, offer cache warm-up disabled")
	} else {
		defer rdb.Close()
		offerCache = cache.NewOfferCache(rdb, cfg.Cache.OfferTTL)
	}

	store := repository.NewStore(db, log)
	exec := retry.New(cfg.Retry.MaxRetries, cfg.Retry.InitialDelay, log)
	lendingService := service.NewLendingService(store, exec, offerCache, log)

	jobs := scheduler.NewJobs(lendingService, lendingService, cfg.Scheduler.ReminderWindow, log)

	// Initialize cron scheduler
	c := scheduler.New(cfg.Location(), log)
	if err := scheduler.Register(ctx, c, cfg.Scheduler, jobs); err != nil {
		log.WithError(err).Fatal("Failed to schedule jobs")
	}

	// Start the scheduler
	c.Start()
	log.Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	cancel()
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
}
