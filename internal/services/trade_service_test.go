package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/utils"
)

func newTrade(timestamp entities.Timestamp, location entities.Location) entities.Trade {
	return entities.Trade{
		Timestamp:   timestamp,
		Location:    location,
		Pair:        entities.NewTradePair("ETH", "BTC"),
		TradeType:   entities.TradeTypeBuy,
		Amount:      decimal.RequireFromString("1.5"),
		Rate:        decimal.RequireFromString("0.05"),
		Fee:         decimal.RequireFromString("0.001"),
		FeeCurrency: "BTC",
	}
}

func TestTradeService(t *testing.T) {
	ctx := context.Background()
	mockMetricsService := permissiveMetrics()
	models := openTestModels(t, mockMetricsService)
	userService := newTestUserService(t, models, mockMetricsService)
	tradeService, err := NewTradeService(models, userService)
	require.NoError(t, err)

	t.Run("requires_logged_in_user", func(t *testing.T) {
		_, err := tradeService.Query(ctx, entities.TradeFilter{})
		assert.ErrorIs(t, err, ErrUserNotLoggedIn)

		_, err = tradeService.Add(ctx, newTrade(1500000000, entities.LocationKraken))
		assert.ErrorIs(t, err, ErrUserNotLoggedIn)

		err = tradeService.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrUserNotLoggedIn)
	})

	_, err = userService.CreateUser(ctx, NewUser{Name: "alice", Password: "123"})
	require.NoError(t, err)

	var added []entities.Trade
	t.Run("add", func(t *testing.T) {
		for i, location := range []entities.Location{entities.LocationKraken, entities.LocationBinance, entities.LocationKraken} {
			trade, err := tradeService.Add(ctx, newTrade(entities.Timestamp(1500000000+i*100), location))
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, trade.ID)
			assert.Equal(t, "alice", trade.Username)
			added = append(added, trade)
		}
	})

	t.Run("query_all", func(t *testing.T) {
		trades, err := tradeService.Query(ctx, entities.TradeFilter{})
		require.NoError(t, err)
		require.Len(t, trades, 3)
		assert.Equal(t, added[0].ID, trades[0].ID)
		assert.Equal(t, added[2].ID, trades[2].ID)
	})

	t.Run("query_filtered", func(t *testing.T) {
		trades, err := tradeService.Query(ctx, entities.TradeFilter{
			FromTimestamp: utils.PointOf(entities.Timestamp(1500000050)),
			Location:      utils.PointOf(entities.LocationKraken),
		})
		require.NoError(t, err)
		require.Len(t, trades, 1)
		assert.Equal(t, added[2].ID, trades[0].ID)
	})

	t.Run("edit", func(t *testing.T) {
		trade := added[1]
		trade.Notes = "edited"
		trade.Amount = decimal.RequireFromString("3")
		edited, err := tradeService.Edit(ctx, trade)
		require.NoError(t, err)
		assert.Equal(t, "edited", edited.Notes)

		trades, err := tradeService.Query(ctx, entities.TradeFilter{Location: utils.PointOf(entities.LocationBinance)})
		require.NoError(t, err)
		require.Len(t, trades, 1)
		assert.Equal(t, "edited", trades[0].Notes)
		assert.True(t, decimal.RequireFromString("3").Equal(trades[0].Amount))
	})

	t.Run("edit_unknown", func(t *testing.T) {
		trade := newTrade(1500000000, entities.LocationKraken)
		trade.ID = uuid.New()
		_, err := tradeService.Edit(ctx, trade)
		assert.ErrorIs(t, err, ErrTradeNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, tradeService.Delete(ctx, added[0].ID))
		err := tradeService.Delete(ctx, added[0].ID)
		assert.ErrorIs(t, err, ErrTradeNotFound)

		trades, err := tradeService.Query(ctx, entities.TradeFilter{})
		require.NoError(t, err)
		assert.Len(t, trades, 2)
	})
}
