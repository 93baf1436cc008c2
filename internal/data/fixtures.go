package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/entities"
)

func InsertTestUser(t *testing.T, ctx context.Context, name string, connectionPool db.ConnectionPool) {
	t.Helper()

	const query = `INSERT INTO users (name, password_hash, sync_approval) VALUES ($1, 'not-a-hash', 'no')`
	_, err := connectionPool.ExecContext(ctx, query, name)
	require.NoError(t, err)
}

func InsertTestTrades(t *testing.T, ctx context.Context, trades []entities.Trade, connectionPool db.ConnectionPool) {
	t.Helper()

	const query = `INSERT INTO trades (id, username, timestamp, location, pair, trade_type, amount, rate, fee, fee_currency, link, notes) VALUES (:id, :username, :timestamp, :location, :pair, :trade_type, :amount, :rate, :fee, :fee_currency, :link, :notes);`
	_, err := connectionPool.NamedExecContext(ctx, query, trades)
	require.NoError(t, err)
}
