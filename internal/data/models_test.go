package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/db/dbtest"
	"github.com/stellar/portfolio-backend/internal/metrics"
)

// permissiveMetrics accepts any DB metric call.
func permissiveMetrics() *metrics.MockMetricsService {
	mockMetricsService := metrics.NewMockMetricsService()
	mockMetricsService.On("ObserveDBQueryDuration", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	mockMetricsService.On("IncDBQuery", mock.Anything, mock.Anything).Return().Maybe()
	mockMetricsService.On("IncDBQueryError", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	return mockMetricsService
}

func openTestPool(t *testing.T) db.ConnectionPool {
	t.Helper()
	dbt := dbtest.Open(t)
	t.Cleanup(dbt.Close)
	dbConnectionPool, err := db.OpenDBConnectionPool(dbt.DSN)
	require.NoError(t, err)
	t.Cleanup(func() { dbConnectionPool.Close() })
	return dbConnectionPool
}

func TestNewModels(t *testing.T) {
	t.Run("requires_connection_pool", func(t *testing.T) {
		models, err := NewModels(nil, permissiveMetrics())
		assert.Nil(t, models)
		assert.EqualError(t, err, "ConnectionPool must be initialized")
	})

	t.Run("requires_metrics_service", func(t *testing.T) {
		dbConnectionPool := openTestPool(t)
		models, err := NewModels(dbConnectionPool, nil)
		assert.Nil(t, models)
		assert.EqualError(t, err, "MetricsService must be initialized")
	})

	t.Run("builds_every_model", func(t *testing.T) {
		dbConnectionPool := openTestPool(t)
		models, err := NewModels(dbConnectionPool, permissiveMetrics())
		require.NoError(t, err)
		assert.NotNil(t, models.Users)
		assert.NotNil(t, models.Trades)
		assert.NotNil(t, models.Settings)
		assert.NotNil(t, models.Tags)
		assert.NotNil(t, models.BlockchainAccounts)
		assert.NotNil(t, models.ManualBalances)

		_, err = models.Users.GetAll(context.Background())
		require.NoError(t, err)
	})
}
