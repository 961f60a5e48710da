package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pondside/AnglerBot_Go/internal/concurrency"
	"github.com/pondside/AnglerBot_Go/internal/config"
	"github.com/pondside/AnglerBot_Go/internal/database"
	"github.com/pondside/AnglerBot_Go/internal/database/postgres"
	"github.com/pondside/AnglerBot_Go/internal/gacha"
	"github.com/pondside/AnglerBot_Go/internal/handler"
	"github.com/pondside/AnglerBot_Go/internal/inventory"
	"github.com/pondside/AnglerBot_Go/internal/item"
	"github.com/pondside/AnglerBot_Go/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	initLogger(cfg)

	connString := cfg.GetDBConnString()
	if err := database.Migrate(connString, "migrations"); err != nil {
		return err
	}

	dbPool, err := database.NewPool(connString,
		database.DefaultMaxConnections,
		database.DefaultMaxConnIdleTime,
		database.DefaultMaxConnLifetime)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	userRepo := postgres.NewUserRepository(dbPool)
	inventoryRepo := postgres.NewInventoryRepository(dbPool)
	itemRepo := postgres.NewItemRepository(dbPool)
	poolRepo := postgres.NewPoolRepository(dbPool)
	auditRepo := postgres.NewAuditLogRepository(dbPool)
	achievementRepo := postgres.NewAchievementRepository(dbPool)

	cachedItems, err := item.NewCachedTemplates(itemRepo, item.DefaultCacheSize)
	if err != nil {
		return err
	}

	drawSlot := concurrency.NewAdmissionSlot()

	gachaService := gacha.NewService(userRepo, inventoryRepo, cachedItems, poolRepo, auditRepo, achievementRepo, drawSlot)
	inventoryService := inventory.NewService(userRepo, inventoryRepo, cachedItems, achievementRepo)

	handler.InitValidator()

	srv := server.NewServer(cfg.Port, dbPool, gachaService, inventoryService)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
		return err
	}

	slog.Info("Server stopped")
	return nil
}
