package serve

import (
	"context"
	"fmt"
	"time"

	"github.com/stellar/portfolio-backend/internal/data"
	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/metrics"
)

const (
	dbConnectAttempts = 5
	dbConnectDelay    = time.Second
)

type databaseProvider struct {
	connectionPool db.ConnectionPool
	models         *data.Models
}

var _ DatabaseProvider = (*databaseProvider)(nil)

func NewDatabaseProvider(connectionPool db.ConnectionPool, metricsService metrics.MetricsService) (*databaseProvider, error) {
	models, err := data.NewModels(connectionPool, metricsService)
	if err != nil {
		return nil, fmt.Errorf("creating data models: %w", err)
	}

	return &databaseProvider{
		connectionPool: connectionPool,
		models:         models,
	}, nil
}

// OpenConnectionPool connects to the database, retrying while it is not ready to accept connections.
func OpenConnectionPool(ctx context.Context, databaseURL string) (db.ConnectionPool, error) {
	connectionPool, err := db.OpenDBConnectionPoolWithRetry(ctx, databaseURL, dbConnectAttempts, dbConnectDelay)
	if err != nil {
		return nil, fmt.Errorf("opening database connection pool: %w", err)
	}
	return connectionPool, nil
}

func (p *databaseProvider) GetModels() *data.Models {
	return p.models
}

func (p *databaseProvider) Close() error {
	if err := p.connectionPool.Close(); err != nil {
		return fmt.Errorf("closing database connection pool: %w", err)
	}
	return nil
}
