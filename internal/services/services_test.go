package services

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stellar/portfolio-backend/internal/data"
	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/db/dbtest"
	"github.com/stellar/portfolio-backend/internal/metrics"
	"github.com/stellar/portfolio-backend/internal/secrets"
)

func permissiveMetrics() *metrics.MockMetricsService {
	mockMetricsService := metrics.NewMockMetricsService()
	mockMetricsService.On("ObserveDBQueryDuration", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	mockMetricsService.On("IncDBQuery", mock.Anything, mock.Anything).Return().Maybe()
	mockMetricsService.On("IncDBQueryError", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	mockMetricsService.On("IncUserAction", mock.Anything).Return().Maybe()
	mockMetricsService.On("SetLoggedInUser", mock.Anything).Return().Maybe()
	return mockMetricsService
}

func openTestModels(t *testing.T, metricsService metrics.MetricsService) *data.Models {
	t.Helper()
	dbt := dbtest.Open(t)
	t.Cleanup(dbt.Close)
	dbConnectionPool, err := db.OpenDBConnectionPool(dbt.DSN)
	require.NoError(t, err)
	t.Cleanup(func() { dbConnectionPool.Close() })

	models, err := data.NewModels(dbConnectionPool, metricsService)
	require.NoError(t, err)
	return models
}

func newTestUserService(t *testing.T, models *data.Models, metricsService metrics.MetricsService) *userService {
	t.Helper()
	userService, err := NewUserService(models, &secrets.BcryptPasswordHasher{Cost: bcrypt.MinCost}, &secrets.DefaultEncrypter{}, metricsService)
	require.NoError(t, err)
	return userService
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}
