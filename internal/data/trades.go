package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/metrics"
	"github.com/stellar/portfolio-backend/internal/utils"
)

var ErrTradeNotFound = errors.New("trade not found")

type TradeModel struct {
	DB             db.ConnectionPool
	MetricsService metrics.MetricsService
}

func (m *TradeModel) Insert(ctx context.Context, trade entities.Trade) error {
	const query = `
		INSERT INTO trades (id, username, timestamp, location, pair, trade_type, amount, rate, fee, fee_currency, link, notes)
		VALUES (:id, :username, :timestamp, :location, :pair, :trade_type, :amount, :rate, :fee, :fee_currency, :link, :notes)
	`
	trade.Link = utils.SanitizeUTF8(trade.Link)
	trade.Notes = utils.SanitizeUTF8(trade.Notes)

	start := time.Now()
	err := utils.RetryOnDeadlock(ctx, func() error {
		_, err := m.DB.NamedExecContext(ctx, query, trade)
		return err
	})
	observeQuery(m.MetricsService, "INSERT", "trades", start, err)
	if err != nil {
		return fmt.Errorf("inserting trade %s: %w", trade.ID, err)
	}
	return nil
}

func (m *TradeModel) Get(ctx context.Context, username string, id entities.TradeID) (*entities.Trade, error) {
	query := fmt.Sprintf(`SELECT %s FROM trades WHERE username = $1 AND id = $2`, columnList(entities.Trade{}))
	var trade entities.Trade
	start := time.Now()
	err := m.DB.GetContext(ctx, &trade, query, username, id)
	observeQuery(m.MetricsService, "SELECT", "trades", start, err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("getting trade %s: %w", id, ErrTradeNotFound)
		}
		return nil, fmt.Errorf("getting trade %s: %w", id, err)
	}
	return &trade, nil
}

// Query returns the trades of the user that match the filter, ordered by timestamp.
func (m *TradeModel) Query(ctx context.Context, username string, filter entities.TradeFilter, sortOrder SortOrder) ([]entities.Trade, error) {
	if !sortOrder.IsValid() {
		return nil, fmt.Errorf("invalid sort order %q", sortOrder)
	}

	conditions := []string{"username = :username"}
	args := map[string]interface{}{"username": username}
	if filter.FromTimestamp != nil {
		conditions = append(conditions, "timestamp >= :from_timestamp")
		args["from_timestamp"] = int64(*filter.FromTimestamp)
	}
	if filter.ToTimestamp != nil {
		conditions = append(conditions, "timestamp <= :to_timestamp")
		args["to_timestamp"] = int64(*filter.ToTimestamp)
	}
	if filter.Location != nil {
		conditions = append(conditions, "location = :location")
		args["location"] = string(*filter.Location)
	}

	namedQuery := fmt.Sprintf(`SELECT %s FROM trades WHERE %s ORDER BY timestamp %s, id`,
		columnList(entities.Trade{}), strings.Join(conditions, " AND "), sortOrder)
	query, queryArgs, err := PrepareNamedQuery(ctx, m.DB, namedQuery, args)
	if err != nil {
		return nil, fmt.Errorf("preparing trades query: %w", err)
	}

	trades := []entities.Trade{}
	start := time.Now()
	err = m.DB.SelectContext(ctx, &trades, query, queryArgs...)
	observeQuery(m.MetricsService, "SELECT", "trades", start, err)
	if err != nil {
		return nil, fmt.Errorf("querying trades: %w", err)
	}
	return trades, nil
}

// Update replaces every field of the stored trade with the same ID and owner.
func (m *TradeModel) Update(ctx context.Context, trade entities.Trade) error {
	const query = `
		UPDATE trades SET
			timestamp = :timestamp, location = :location, pair = :pair, trade_type = :trade_type,
			amount = :amount, rate = :rate, fee = :fee, fee_currency = :fee_currency,
			link = :link, notes = :notes
		WHERE id = :id AND username = :username
	`
	trade.Link = utils.SanitizeUTF8(trade.Link)
	trade.Notes = utils.SanitizeUTF8(trade.Notes)

	start := time.Now()
	result, err := m.DB.NamedExecContext(ctx, query, trade)
	observeQuery(m.MetricsService, "UPDATE", "trades", start, err)
	if err != nil {
		return fmt.Errorf("updating trade %s: %w", trade.ID, err)
	}
	return checkAffected(result, fmt.Sprintf("updating trade %s", trade.ID), ErrTradeNotFound)
}

func (m *TradeModel) Delete(ctx context.Context, username string, id entities.TradeID) error {
	const query = `DELETE FROM trades WHERE id = $1 AND username = $2`
	start := time.Now()
	result, err := m.DB.ExecContext(ctx, query, id, username)
	observeQuery(m.MetricsService, "DELETE", "trades", start, err)
	if err != nil {
		return fmt.Errorf("deleting trade %s: %w", id, err)
	}
	return checkAffected(result, fmt.Sprintf("deleting trade %s", id), ErrTradeNotFound)
}

func checkAffected(result sql.Result, action string, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected %s: %w", action, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", action, notFound)
	}
	return nil
}
