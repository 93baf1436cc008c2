package data

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/portfolio-backend/internal/entities"
)

func TestSettingsModel(t *testing.T) {
	dbConnectionPool := openTestPool(t)
	ctx := context.Background()
	m := &SettingsModel{DB: dbConnectionPool, MetricsService: permissiveMetrics()}
	InsertTestUser(t, ctx, "alice", dbConnectionPool)

	t.Run("settings_upsert", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "alice", nil))
		require.NoError(t, m.Set(ctx, "alice", map[string]string{"main_currency": "EUR", "ui_floating_precision": "4"}))
		require.NoError(t, m.Set(ctx, "alice", map[string]string{"main_currency": "USD"}))

		settings, err := m.GetAll(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"main_currency": "USD", "ui_floating_precision": "4"}, settings)
	})

	t.Run("ignored_assets", func(t *testing.T) {
		require.NoError(t, m.AddIgnoredAssets(ctx, "alice", []string{"DAO", "SAI"}))
		require.NoError(t, m.AddIgnoredAssets(ctx, "alice", []string{"SAI"}))

		ignored, err := m.GetIgnoredAssets(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 2, ignored.Cardinality())
		assert.True(t, ignored.Contains("DAO", "SAI"))
	})
}

func TestTagModel(t *testing.T) {
	dbConnectionPool := openTestPool(t)
	ctx := context.Background()
	m := &TagModel{DB: dbConnectionPool, MetricsService: permissiveMetrics()}
	InsertTestUser(t, ctx, "alice", dbConnectionPool)

	tags := []entities.Tag{
		{Name: "public", Description: "Public accounts", BackgroundColor: "ffffff", ForegroundColor: "000000"},
		{Name: "desktop", BackgroundColor: "000000", ForegroundColor: "ffffff"},
	}
	require.NoError(t, m.Insert(ctx, "alice", tags))

	got, err := m.GetAll(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []entities.Tag{tags[1], tags[0]}, got)

	assert.Error(t, m.Insert(ctx, "alice", tags[:1]), "duplicated tag names are rejected")
}

func TestBlockchainAccountModel(t *testing.T) {
	dbConnectionPool := openTestPool(t)
	ctx := context.Background()
	m := &BlockchainAccountModel{DB: dbConnectionPool, MetricsService: permissiveMetrics()}
	InsertTestUser(t, ctx, "alice", dbConnectionPool)

	accounts := []entities.BlockchainAccount{
		{Blockchain: entities.BlockchainBitcoin, Address: "1BoatSLRHtKNngkdXEeobR76b53LETtpyT", Label: "cold"},
		{Blockchain: entities.BlockchainEthereum, Address: "0x9531C059098e3d194fF87FebB587aB07B30B1306"},
	}
	require.NoError(t, m.Insert(ctx, "alice", accounts))

	all, err := m.GetByBlockchains(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, accounts, all)

	eth, err := m.GetByBlockchains(ctx, "alice", entities.BlockchainEthereum)
	require.NoError(t, err)
	assert.Equal(t, accounts[1:], eth)
}

func TestManualBalanceModel(t *testing.T) {
	dbConnectionPool := openTestPool(t)
	ctx := context.Background()
	m := &ManualBalanceModel{DB: dbConnectionPool, MetricsService: permissiveMetrics()}
	InsertTestUser(t, ctx, "alice", dbConnectionPool)

	balances := []entities.ManuallyTrackedBalance{
		{Asset: "BTC", Label: "paper wallet", Amount: decimal.RequireFromString("0.5"), Location: entities.LocationBlockchain, Tags: []string{"cold"}},
		{Asset: "EUR", Label: "bank", Amount: decimal.RequireFromString("1000"), Location: entities.LocationBanks},
	}
	require.NoError(t, m.Insert(ctx, "alice", balances))

	got, err := m.GetAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bank", got[0].Label)
	assert.Empty(t, got[0].Tags)
	assert.Equal(t, "paper wallet", got[1].Label)
	assert.Equal(t, []string{"cold"}, got[1].Tags)
	assert.True(t, decimal.RequireFromString("0.5").Equal(got[1].Amount))
}
