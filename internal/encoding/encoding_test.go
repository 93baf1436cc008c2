package encoding

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/validators"
)

func validationErrors(t *testing.T, v any) map[string]interface{} {
	t.Helper()
	err := validators.NewValidator().Struct(v)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	require.True(t, errors.As(err, &vErrs))
	return validators.ParseValidationError(vErrs)
}

func TestValueUnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    Value
		wantErr bool
	}{
		{name: "string", input: `"1.5"`, want: "1.5"},
		{name: "number", input: `1500000000`, want: "1500000000"},
		{name: "decimal_number", input: `0.000001`, want: "0.000001"},
		{name: "null", input: `null`, want: ""},
		{name: "bool", input: `true`, want: "true"},
		{name: "object", input: `{"a": 1}`, wantErr: true},
		{name: "array", input: `[1]`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var v Value
			err := json.Unmarshal([]byte(tc.input), &v)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestTradesQueryRequest(t *testing.T) {
	t.Run("defaults_to_no_filter", func(t *testing.T) {
		req := TradesQueryRequest{}
		assert.Nil(t, validationErrors(t, req))

		filter, err := req.Load()
		require.NoError(t, err)
		assert.Equal(t, entities.TradeFilter{}, filter)
	})

	t.Run("loads_all_fields", func(t *testing.T) {
		req := TradesQueryRequest{FromTimestamp: "1000", ToTimestamp: "2000", Location: "kraken"}
		assert.Nil(t, validationErrors(t, req))

		filter, err := req.Load()
		require.NoError(t, err)
		require.NotNil(t, filter.FromTimestamp)
		require.NotNil(t, filter.ToTimestamp)
		require.NotNil(t, filter.Location)
		assert.Equal(t, entities.Timestamp(1000), *filter.FromTimestamp)
		assert.Equal(t, entities.Timestamp(2000), *filter.ToTimestamp)
		assert.Equal(t, entities.LocationKraken, *filter.Location)
	})

	t.Run("invalid_values", func(t *testing.T) {
		req := TradesQueryRequest{FromTimestamp: "-1", ToTimestamp: "foo", Location: "moon"}
		assert.Equal(t, map[string]interface{}{
			"from_timestamp": "Failed to deserialize a timestamp entry. Timestamps can't be negative",
			"to_timestamp":   "Failed to deserialize a timestamp entry from string foo",
			"location":       "Failed to deserialize location symbol. Unknown symbol moon for location",
		}, validationErrors(t, req))
	})

	t.Run("timestamps_out_of_int64_range", func(t *testing.T) {
		req := TradesQueryRequest{FromTimestamp: "9223372036854775808", ToTimestamp: "1e30"}
		assert.Equal(t, map[string]interface{}{
			"from_timestamp": "Failed to deserialize a timestamp entry. Timestamp 9223372036854775808 is out of range",
			"to_timestamp":   "Failed to deserialize a timestamp entry from string 1e30",
		}, validationErrors(t, req))
	})
}

const validTradeJSON = `{
	"timestamp": 1500000000,
	"location": "external",
	"pair": "BTC_EUR",
	"trade_type": "buy",
	"amount": "1.5",
	"rate": 4500.25,
	"fee": "0.01",
	"fee_currency": "BTC"
}`

func TestTradeRequest(t *testing.T) {
	t.Run("valid_trade", func(t *testing.T) {
		var req TradeRequest
		require.NoError(t, json.Unmarshal([]byte(validTradeJSON), &req))
		assert.Nil(t, validationErrors(t, req))

		trade, err := req.Load()
		require.NoError(t, err)
		assert.Equal(t, entities.Timestamp(1500000000), trade.Timestamp)
		assert.Equal(t, entities.LocationExternal, trade.Location)
		assert.Equal(t, entities.TradePair("BTC_EUR"), trade.Pair)
		assert.Equal(t, entities.TradeTypeBuy, trade.TradeType)
		assert.True(t, decimal.RequireFromString("1.5").Equal(trade.Amount))
		assert.True(t, decimal.RequireFromString("4500.25").Equal(trade.Rate))
		assert.True(t, decimal.RequireFromString("0.01").Equal(trade.Fee))
		assert.Equal(t, "BTC", trade.FeeCurrency)
		assert.Empty(t, trade.Link)
		assert.Empty(t, trade.Notes)
	})

	t.Run("missing_fields", func(t *testing.T) {
		assert.Equal(t, map[string]interface{}{
			"timestamp":    "This field is required",
			"location":     "This field is required",
			"pair":         "This field is required",
			"trade_type":   "This field is required",
			"amount":       "This field is required",
			"rate":         "This field is required",
			"fee":          "This field is required",
			"fee_currency": "This field is required",
		}, validationErrors(t, TradeRequest{}))
	})

	t.Run("invalid_values", func(t *testing.T) {
		req := TradeRequest{
			Timestamp:   "1.5",
			Location:    "external",
			Pair:        "BTCEUR",
			TradeType:   "borrow",
			Amount:      "-1",
			Rate:        "0",
			Fee:         "abc",
			FeeCurrency: "NOTAREALASSET",
		}
		assert.Equal(t, map[string]interface{}{
			"timestamp":    "Failed to deserialize a timestamp entry from string 1.5",
			"pair":         "Unprocessable pair BTCEUR encountered",
			"trade_type":   "Failed to deserialize trade type symbol. Unknown symbol borrow for trade type",
			"amount":       "Failed to deserialize an amount entry: amounts can't be negative",
			"rate":         "Failed to deserialize a price entry: prices should be positive",
			"fee":          "Failed to deserialize a fee entry: abc is not a number",
			"fee_currency": "Unknown asset NOTAREALASSET provided.",
		}, validationErrors(t, req))
	})
}

func TestTradePatchRequest(t *testing.T) {
	id := uuid.New()

	t.Run("requires_trade_id", func(t *testing.T) {
		var req TradePatchRequest
		require.NoError(t, json.Unmarshal([]byte(validTradeJSON), &req))
		assert.Equal(t, map[string]interface{}{
			"trade_id": "This field is required",
		}, validationErrors(t, req))
	})

	t.Run("reports_embedded_fields_by_json_name", func(t *testing.T) {
		req := TradePatchRequest{TradeID: id.String()}
		errs := validationErrors(t, req)
		assert.Contains(t, errs, "timestamp")
		assert.Contains(t, errs, "fee_currency")
		assert.NotContains(t, errs, "trade_id")
	})

	t.Run("loads_trade_with_id", func(t *testing.T) {
		var req TradePatchRequest
		require.NoError(t, json.Unmarshal([]byte(validTradeJSON), &req))
		req.TradeID = id.String()
		assert.Nil(t, validationErrors(t, req))

		trade, err := req.Load()
		require.NoError(t, err)
		assert.Equal(t, id, trade.ID)
		assert.Equal(t, entities.TradePair("BTC_EUR"), trade.Pair)
	})

	t.Run("invalid_trade_id", func(t *testing.T) {
		errs := validationErrors(t, TradeDeleteRequest{TradeID: "nope"})
		assert.Equal(t, map[string]interface{}{"trade_id": "Invalid value"}, errs)
	})
}

func TestNewUserRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := NewNewUserRequest()
		require.NoError(t, json.Unmarshal([]byte(`{"name": "alice", "password": "123"}`), &req))
		assert.Nil(t, validationErrors(t, req))
		assert.Equal(t, "unknown", req.SyncApproval)

		premium, err := req.Premium()
		require.NoError(t, err)
		assert.True(t, premium.IsEmpty())
	})

	t.Run("missing_name_and_password", func(t *testing.T) {
		assert.Equal(t, map[string]interface{}{
			"name":     "This field is required",
			"password": "This field is required",
		}, validationErrors(t, NewNewUserRequest()))
	})

	t.Run("invalid_sync_approval_and_premium", func(t *testing.T) {
		req := NewNewUserRequest()
		req.Name, req.Password = "alice", "123"
		req.SyncApproval = "maybe"
		req.PremiumAPIKey = "###"
		assert.Equal(t, map[string]interface{}{
			"sync_approval":   `Unexpected value "maybe". Expected one of the following values: unknown, yes, no`,
			"premium_api_key": "Should be base64 encoded",
		}, validationErrors(t, req))
	})

	t.Run("incomplete_premium", func(t *testing.T) {
		req := NewNewUserRequest()
		req.PremiumAPIKey = "YWJj"
		_, err := req.Premium()
		assert.ErrorIs(t, err, ErrIncompletePremiumCredentials)
	})
}

func TestUserActionRequest(t *testing.T) {
	req := NewUserActionRequest("alice")
	require.NoError(t, json.Unmarshal([]byte(`{"password": "123", "action": "login", "sync_approval": "yes"}`), &req))
	assert.Nil(t, validationErrors(t, req))
	assert.Equal(t, "alice", req.Name)
	assert.Equal(t, "login", req.Action)

	req.Action = "signup"
	assert.Equal(t, map[string]interface{}{
		"action": `Unexpected value "signup". Expected one of the following values: login, logout`,
	}, validationErrors(t, req))

	noAction := NewUserActionRequest("alice")
	noAction.Password = "123"
	assert.Nil(t, validationErrors(t, noAction))
	assert.Empty(t, noAction.Action)
}

func TestBalanceQueryRequests(t *testing.T) {
	t.Run("exchange", func(t *testing.T) {
		req := NewExchangeBalanceQueryRequest("kraken")
		assert.Nil(t, validationErrors(t, req))
		assert.False(t, req.AsyncQuery)
		assert.Equal(t, entities.LocationKraken, req.Location())

		assert.Equal(t, map[string]interface{}{
			"name": "This field is required",
		}, validationErrors(t, NewExchangeBalanceQueryRequest("")))
		assert.Equal(t, map[string]interface{}{
			"name": `Unexpected value "external". Expected one of the supported exchanges: binance, bitmex, bittrex, coinbase, coinbasepro, gemini, kraken, poloniex`,
		}, validationErrors(t, NewExchangeBalanceQueryRequest("external")))

		for _, location := range entities.SupportedExchanges.ToSlice() {
			assert.Nil(t, validationErrors(t, NewExchangeBalanceQueryRequest(string(location))), location)
		}
	})

	t.Run("blockchain_defaults_to_all", func(t *testing.T) {
		req := NewBlockchainBalanceQueryRequest("")
		assert.Nil(t, validationErrors(t, req))
		assert.Equal(t, entities.AllBlockchains, req.Blockchains())
	})

	t.Run("single_blockchain", func(t *testing.T) {
		req := NewBlockchainBalanceQueryRequest("ETH")
		assert.Nil(t, validationErrors(t, req))
		assert.Equal(t, []entities.Blockchain{entities.BlockchainEthereum}, req.Blockchains())
		assert.Contains(t, validationErrors(t, NewBlockchainBalanceQueryRequest("DOGE")), "name")
	})
}

func TestTradeResponseJSON(t *testing.T) {
	id := uuid.MustParse("6fd8cbc6-20ee-4a49-9a5b-1b2a1b7a6c64")
	resp := NewTradeResponse(entities.Trade{
		ID:          id,
		Timestamp:   1500000000,
		Location:    entities.LocationKraken,
		Pair:        "ETH_BTC",
		TradeType:   entities.TradeTypeSettlementSell,
		Amount:      decimal.RequireFromString("2"),
		Rate:        decimal.RequireFromString("0.05"),
		Fee:         decimal.RequireFromString("0.001"),
		FeeCurrency: "ETH",
	})
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"trade_id": "6fd8cbc6-20ee-4a49-9a5b-1b2a1b7a6c64",
		"timestamp": 1500000000,
		"location": "kraken",
		"pair": "ETH_BTC",
		"trade_type": "settlement sell",
		"amount": "2",
		"rate": "0.05",
		"fee": "0.001",
		"fee_currency": "ETH",
		"link": "",
		"notes": ""
	}`, string(b))
}
