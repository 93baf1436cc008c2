package serve

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	supporthttp "github.com/stellar/go-stellar-sdk/support/http"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/metrics"
)

type Configs struct {
	Port               int
	DatabaseURL        string
	LogLevel           logrus.Level
	BcryptCost         int
	MaxConcurrentTasks int
	AppTracker         apptracker.AppTracker
}

func Serve(cfg Configs) error {
	ctx := context.Background()
	log.DefaultLogger.SetLevel(cfg.LogLevel)

	connectionPool, err := OpenConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to the database: %w", err)
	}
	sqlxDB, err := connectionPool.SqlxDB(ctx)
	if err != nil {
		return fmt.Errorf("getting sqlx db: %w", err)
	}
	metricsService := metrics.NewMetricsService(sqlxDB)

	dbProvider, err := NewDatabaseProvider(connectionPool, metricsService)
	if err != nil {
		return fmt.Errorf("setting up database provider: %w", err)
	}
	container, err := NewServiceContainer(ServiceDependencies{
		DatabaseProvider:   dbProvider,
		MetricsService:     metricsService,
		AppTracker:         cfg.AppTracker,
		BcryptCost:         cfg.BcryptCost,
		MaxConcurrentTasks: cfg.MaxConcurrentTasks,
	})
	if err != nil {
		return fmt.Errorf("setting up service container: %w", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	supporthttp.Run(supporthttp.Config{
		ListenAddr: addr,
		Handler:    NewHandler(container),
		OnStarting: func() {
			log.Infof("Starting Portfolio Backend server on port %d", cfg.Port)
		},
		OnStopping: func() {
			log.Info("Stopping Portfolio Backend server")
			container.GetTaskManager().Stop()
			if cfg.AppTracker != nil {
				cfg.AppTracker.Flush()
			}
			if err := dbProvider.Close(); err != nil {
				log.Error(err)
			}
		},
	})

	return nil
}
