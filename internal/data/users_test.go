package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/metrics"
)

func TestUserModelInsert(t *testing.T) {
	dbConnectionPool := openTestPool(t)
	ctx := context.Background()

	mockMetricsService := metrics.NewMockMetricsService()
	mockMetricsService.On("ObserveDBQueryDuration", "INSERT", "users", mock.Anything).Return().Times(2)
	mockMetricsService.On("IncDBQuery", "INSERT", "users").Return().Once()
	mockMetricsService.On("IncDBQueryError", "INSERT", "users", "unique_violation").Return().Once()
	defer mockMetricsService.AssertExpectations(t)

	m := &UserModel{DB: dbConnectionPool, MetricsService: mockMetricsService}

	user := UserRecord{Name: "alice", PasswordHash: "hash", SyncApproval: entities.SyncApprovalYes}
	require.NoError(t, m.Insert(ctx, user))

	err := m.Insert(ctx, user)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserModelGet(t *testing.T) {
	dbConnectionPool := openTestPool(t)
	ctx := context.Background()
	m := &UserModel{DB: dbConnectionPool, MetricsService: permissiveMetrics()}

	t.Run("not_found", func(t *testing.T) {
		user, err := m.Get(ctx, "nobody")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("found", func(t *testing.T) {
		require.NoError(t, m.Insert(ctx, UserRecord{
			Name:             "bob",
			PasswordHash:     "hash",
			SyncApproval:     entities.SyncApprovalNo,
			PremiumAPIKey:    "key",
			PremiumAPISecret: "secret",
		}))

		user, err := m.Get(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, "bob", user.Name)
		assert.Equal(t, "hash", user.PasswordHash)
		assert.Equal(t, entities.SyncApprovalNo, user.SyncApproval)
		assert.True(t, user.HasPremium())
		assert.False(t, user.CreatedAt.IsZero())
	})
}

func TestUserModelGetAll(t *testing.T) {
	dbConnectionPool := openTestPool(t)
	ctx := context.Background()
	m := &UserModel{DB: dbConnectionPool, MetricsService: permissiveMetrics()}

	users, err := m.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	InsertTestUser(t, ctx, "zoe", dbConnectionPool)
	InsertTestUser(t, ctx, "adam", dbConnectionPool)

	users, err = m.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "adam", users[0].Name)
	assert.Equal(t, "zoe", users[1].Name)
}

func TestUserModelUpdates(t *testing.T) {
	dbConnectionPool := openTestPool(t)
	ctx := context.Background()
	m := &UserModel{DB: dbConnectionPool, MetricsService: permissiveMetrics()}

	InsertTestUser(t, ctx, "alice", dbConnectionPool)

	require.NoError(t, m.UpdateSyncApproval(ctx, dbConnectionPool, "alice", entities.SyncApprovalYes))
	require.NoError(t, m.UpdatePremium(ctx, dbConnectionPool, "alice", "key", "encrypted"))

	user, err := m.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, entities.SyncApprovalYes, user.SyncApproval)
	assert.Equal(t, "key", user.PremiumAPIKey)
	assert.Equal(t, "encrypted", user.PremiumAPISecret)

	err = m.UpdateSyncApproval(ctx, dbConnectionPool, "nobody", entities.SyncApprovalYes)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserModelUpdatesInTransaction(t *testing.T) {
	dbConnectionPool := openTestPool(t)
	ctx := context.Background()
	m := &UserModel{DB: dbConnectionPool, MetricsService: permissiveMetrics()}

	InsertTestUser(t, ctx, "alice", dbConnectionPool)

	err := db.RunInTransaction(ctx, dbConnectionPool, nil, func(dbTx db.Transaction) error {
		if err := m.UpdateSyncApproval(ctx, dbTx, "alice", entities.SyncApprovalYes); err != nil {
			return err
		}
		return m.UpdatePremium(ctx, dbTx, "nobody", "key", "encrypted")
	})
	assert.ErrorIs(t, err, ErrUserNotFound)

	user, err := m.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, entities.SyncApprovalNo, user.SyncApproval)
}
