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

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/fameflow-backend/internal/api"
	"github.com/baharkarakas/fameflow-backend/internal/config"
	"github.com/baharkarakas/fameflow-backend/internal/db"
	"github.com/baharkarakas/fameflow-backend/internal/events"
	"github.com/baharkarakas/fameflow-backend/internal/logger"
	"github.com/baharkarakas/fameflow-backend/internal/metrics"
	"github.com/baharkarakas/fameflow-backend/internal/repository"
	"github.com/baharkarakas/fameflow-backend/internal/repository/memory"
	"github.com/baharkarakas/fameflow-backend/internal/repository/postgres"
	"github.com/baharkarakas/fameflow-backend/internal/services"
	"github.com/baharkarakas/fameflow-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	// The storefront reads money as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("storage", "driver", cfg.StorageDriver, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	authSvc := services.NewAuthService(store.Admins(), store.ActivityLogs())
	if seeded, err := authSvc.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Error("seed admin", "err", err)
		os.Exit(1)
	} else if seeded {
		log.Info("seeded admin account", "email", cfg.AdminEmail)
	}

	var pub events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		pub = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersTopic)
		log.Info("order events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaOrdersTopic)
	}
	defer func() {
		if err := pub.Close(); err != nil {
			log.Warn("close publisher", "err", err)
		}
	}()

	metrics.Init()
	wp := worker.NewPool(cfg.Workers, 1024)

	ledger := services.NewLedgerService(store)
	r := api.NewRouter(api.RouterDeps{
		Cfg:      cfg,
		Log:      log,
		OrderSvc: services.NewOrderService(store, pub, wp),
		Ledger:   ledger,
		AdminSvc: services.NewAdminService(store),
		AuthSvc:  authSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "err", err)
	}
	// drain queued order events before the publisher closes
	wp.Stop()
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (repository.Store, error) {
	switch cfg.StorageDriver {
	case "memory":
		log.Warn("using in-memory storage; data is lost on exit")
		return memory.New(), nil
	case "postgres", "":
	default:
		return nil, errors.New("unknown STORAGE_DRIVER " + cfg.StorageDriver)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("migrations applied")
	}
	return postgres.NewStore(pool), nil
}
