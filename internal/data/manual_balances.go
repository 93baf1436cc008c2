package data

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/metrics"
)

type ManualBalanceModel struct {
	DB             db.ConnectionPool
	MetricsService metrics.MetricsService
}

type manualBalanceRow struct {
	Username string            `db:"username"`
	Label    string            `db:"label"`
	Asset    string            `db:"asset"`
	Amount   decimal.Decimal   `db:"amount"`
	Location entities.Location `db:"location"`
	Tags     pq.StringArray    `db:"tags"`
}

func (m *ManualBalanceModel) Insert(ctx context.Context, username string, balances []entities.ManuallyTrackedBalance) error {
	if len(balances) == 0 {
		return nil
	}
	rows := make([]manualBalanceRow, 0, len(balances))
	for _, balance := range balances {
		tags := balance.Tags
		if tags == nil {
			tags = []string{}
		}
		rows = append(rows, manualBalanceRow{
			Username: username,
			Label:    balance.Label,
			Asset:    balance.Asset,
			Amount:   balance.Amount,
			Location: balance.Location,
			Tags:     pq.StringArray(tags),
		})
	}

	const query = `
		INSERT INTO manually_tracked_balances (username, label, asset, amount, location, tags)
		VALUES (:username, :label, :asset, :amount, :location, :tags)
	`
	start := time.Now()
	_, err := m.DB.NamedExecContext(ctx, query, rows)
	observeQuery(m.MetricsService, "INSERT", "manually_tracked_balances", start, err)
	if err != nil {
		return fmt.Errorf("inserting %d manually tracked balances for %s: %w", len(balances), username, err)
	}
	return nil
}

func (m *ManualBalanceModel) GetAll(ctx context.Context, username string) ([]entities.ManuallyTrackedBalance, error) {
	query := fmt.Sprintf(`SELECT %s FROM manually_tracked_balances WHERE username = $1 ORDER BY label`, columnList(manualBalanceRow{}))
	var rows []manualBalanceRow
	start := time.Now()
	err := m.DB.SelectContext(ctx, &rows, query, username)
	observeQuery(m.MetricsService, "SELECT", "manually_tracked_balances", start, err)
	if err != nil {
		return nil, fmt.Errorf("getting manually tracked balances for %s: %w", username, err)
	}

	balances := make([]entities.ManuallyTrackedBalance, 0, len(rows))
	for _, row := range rows {
		balances = append(balances, entities.ManuallyTrackedBalance{
			Asset:    row.Asset,
			Label:    row.Label,
			Amount:   row.Amount,
			Location: row.Location,
			Tags:     []string(row.Tags),
		})
	}
	return balances, nil
}
