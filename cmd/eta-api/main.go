// README: Entry point; loads config, wires the estimator, serves HTTP until SIGINT/SIGTERM (SIGHUP reloads the model).
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"deliveryeta/internal/config"
	httptransport "deliveryeta/internal/http"
	"deliveryeta/internal/http/handlers"
	"deliveryeta/internal/infra"
	"deliveryeta/internal/modules/artifact"
	"deliveryeta/internal/modules/estimator"
	"deliveryeta/internal/modules/pricing"
	"deliveryeta/internal/modules/quote"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := infra.NewLogger(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("eta-api stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handlers.Check{}
	var opts []estimator.Option
	var models artifact.Store = artifact.NewFileStore(cfg.Model.Dir)
	var quotes *quote.Service

	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer dbPool.Close()
		checks["postgres"] = dbPool.Ping

		quoteStore := quote.NewStore(dbPool)
		if err := quoteStore.EnsureSchema(ctx); err != nil {
			return err
		}
		quotes = quote.NewService(quoteStore)
		opts = append(opts, estimator.WithRecorder(quotes))

		if cfg.Model.Backend == config.BackendPostgres {
			pgModels := artifact.NewPGStore(dbPool)
			if err := pgModels.EnsureSchema(ctx); err != nil {
				return err
			}
			models = pgModels
		}
	}

	if cfg.Redis.Addr != "" {
		redisClient := infra.NewRedis(cfg.Redis.Addr)
		defer redisClient.Close()
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		opts = append(opts, estimator.WithCache(estimator.NewRedisCache(redisClient, cfg.Redis.TTL)))
	}

	loader := estimator.NewLoader(models)
	if a, err := loader.Load(ctx); err != nil {
		logger.Warn("no trained model, serving fallback estimates until one loads", zap.Error(err))
	} else {
		logger.Info("model loaded",
			zap.String("model_type", a.Metadata.ModelType),
			zap.Float64("r2", a.Metadata.Metrics.R2),
			zap.Time("trained_at", a.Metadata.TrainedAt),
		)
	}

	go reloadOnHangup(ctx, loader, logger)

	engine := estimator.NewEngine(cfg.Tariff, loader, pricing.NewService(cfg.Tariff), logger, opts...)
	handler := httptransport.NewServer(httptransport.ServerDeps{
		Estimator:   engine,
		Quotes:      quotes,
		Checks:      checks,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Log:         logger,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// reloadOnHangup swaps in a freshly trained model on SIGHUP.
func reloadOnHangup(ctx context.Context, loader *estimator.Loader, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			a, err := loader.Reload(ctx)
			if err != nil {
				logger.Warn("model reload failed, keeping current model", zap.Error(err))
				continue
			}
			logger.Info("model reloaded", zap.String("model_type", a.Metadata.ModelType), zap.String("version", a.Version()))
		}
	}
}
