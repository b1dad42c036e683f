package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cardealer-labs/dealerships-api/internal/background"
	"github.com/cardealer-labs/dealerships-api/internal/config"
	"github.com/cardealer-labs/dealerships-api/internal/database"
	handler "github.com/cardealer-labs/dealerships-api/internal/delivery/http"
	"github.com/cardealer-labs/dealerships-api/internal/fixtures"
	"github.com/cardealer-labs/dealerships-api/internal/logging"
	"github.com/cardealer-labs/dealerships-api/internal/monitoring"
	"github.com/cardealer-labs/dealerships-api/internal/s3"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logrus.WithError(err).Fatal("could not load configuration")
	}

	logging.InitLogger(logging.Options{
		Level:    cfg.LogLevel,
		JSON:     cfg.LogFormat == config.LogFormatJSON,
		File:     cfg.LogFile,
		CrashDir: cfg.CrashLogDir,
	})
	logger := logging.GetLogger()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", logging.Fields{"error": err.Error()})
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

func run(cfg *config.Config, logger *logging.Logger) error {
	defer logger.RecoverAndLogPanic()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The S3 client is only built if a fixture actually lives in a bucket.
	loader := fixtures.NewLoader(func(ctx context.Context) (fixtures.ObjectReader, error) {
		return s3.NewS3Session(ctx, s3.SessionOptions{
			Region:    cfg.AWSRegion,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
			Endpoint:  cfg.AWSEndpoint,
		})
	})
	fx, err := loader.Load(ctx, cfg.ReviewsFixture, cfg.DealershipsFixture)
	if err != nil {
		return err
	}
	logger.Info("loaded fixtures", logging.Fields{
		"reviews":     len(fx.Reviews),
		"dealerships": len(fx.Dealerships),
	})

	db, err := database.NewDatabaseClient(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoConnectTimeout)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := db.Disconnect(disconnectCtx); err != nil {
			logger.Error("could not disconnect from MongoDB", logging.Fields{"error": err.Error()})
		}
	}()
	logger.Info("connected to MongoDB", logging.Fields{"database": cfg.MongoDatabase})

	reviewUseCase := db.ReviewUseCase()
	dealershipUseCase := db.DealershipUseCase()
	metrics := monitoring.NewMetrics()

	seeder := background.NewSeeder(reviewUseCase, dealershipUseCase, cfg.SeedStrategy, logger, metrics)
	if _, err := seeder.Seed(ctx, fx); err != nil {
		logger.Warn("seeding finished with errors", logging.Fields{"error": err.Error()})
	}

	router := handler.NewRouter(reviewUseCase, dealershipUseCase, handler.RouterOptions{
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	servers := []*http.Server{{Addr: cfg.Addr(), Handler: router}}
	if cfg.MetricsAddr != "" {
		metricsRouter := chi.NewRouter()
		metricsRouter.Handle("/metrics", metrics.Handler())
		servers = append(servers, &http.Server{Addr: cfg.MetricsAddr, Handler: metricsRouter})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, server := range servers {
		server := server
		g.Go(func() error {
			logger.Info("listening", logging.Fields{"addr": server.Addr})
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, server := range servers {
			if err := server.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
