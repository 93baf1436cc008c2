package data

import (
	"context"
	"fmt"
	"time"

	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/metrics"
)

type BlockchainAccountModel struct {
	DB             db.ConnectionPool
	MetricsService metrics.MetricsService
}

type blockchainAccountRow struct {
	Username string `db:"username"`
	entities.BlockchainAccount
}

func (m *BlockchainAccountModel) Insert(ctx context.Context, username string, accounts []entities.BlockchainAccount) error {
	if len(accounts) == 0 {
		return nil
	}
	rows := make([]blockchainAccountRow, 0, len(accounts))
	for _, account := range accounts {
		rows = append(rows, blockchainAccountRow{Username: username, BlockchainAccount: account})
	}

	const query = `
		INSERT INTO blockchain_accounts (username, blockchain, address, label)
		VALUES (:username, :blockchain, :address, :label)
		ON CONFLICT DO NOTHING
	`
	start := time.Now()
	_, err := m.DB.NamedExecContext(ctx, query, rows)
	observeQuery(m.MetricsService, "INSERT", "blockchain_accounts", start, err)
	if err != nil {
		return fmt.Errorf("inserting %d blockchain accounts for %s: %w", len(accounts), username, err)
	}
	return nil
}

// GetByBlockchains returns the user's accounts on the given chains, or on every chain when none are given.
func (m *BlockchainAccountModel) GetByBlockchains(ctx context.Context, username string, blockchains ...entities.Blockchain) ([]entities.BlockchainAccount, error) {
	namedQuery := `SELECT blockchain, address, label FROM blockchain_accounts WHERE username = :username`
	args := map[string]interface{}{"username": username}
	if len(blockchains) > 0 {
		namedQuery += ` AND blockchain IN (:blockchains)`
		args["blockchains"] = blockchains
	}
	namedQuery += ` ORDER BY blockchain, address`

	query, queryArgs, err := PrepareNamedQuery(ctx, m.DB, namedQuery, args)
	if err != nil {
		return nil, fmt.Errorf("preparing blockchain accounts query: %w", err)
	}

	accounts := []entities.BlockchainAccount{}
	start := time.Now()
	err = m.DB.SelectContext(ctx, &accounts, query, queryArgs...)
	observeQuery(m.MetricsService, "SELECT", "blockchain_accounts", start, err)
	if err != nil {
		return nil, fmt.Errorf("getting blockchain accounts for %s: %w", username, err)
	}
	return accounts, nil
}
