package serialization

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/portfolio-backend/internal/entities"
)

func TestDeserializeTimestamp(t *testing.T) {
	testCases := []struct {
		name    string
		value   string
		want    entities.Timestamp
		wantErr string
	}{
		{name: "integer", value: "1500000000", want: 1500000000},
		{name: "zero", value: "0", want: 0},
		{name: "max_int64", value: "9223372036854775807", want: 9223372036854775807},
		{name: "integral_decimal", value: "1500000000.0", wantErr: "Failed to deserialize a timestamp entry from string 1500000000.0"},
		{name: "exponent", value: "1e3", wantErr: "Failed to deserialize a timestamp entry from string 1e3"},
		{name: "above_int64", value: "9223372036854775808", wantErr: "Failed to deserialize a timestamp entry. Timestamp 9223372036854775808 is out of range"},
		{name: "far_above_int64", value: "18446744073709551617", wantErr: "Failed to deserialize a timestamp entry. Timestamp 18446744073709551617 is out of range"},
		{name: "below_int64", value: "-9223372036854775809", wantErr: "Failed to deserialize a timestamp entry. Timestamps can't be negative"},
		{name: "surrounding_spaces", value: " 15 ", wantErr: "Failed to deserialize a timestamp entry from string  15 "},
		{name: "fractional", value: "1500000000.5", wantErr: "Failed to deserialize a timestamp entry from string 1500000000.5"},
		{name: "negative", value: "-1", wantErr: "Failed to deserialize a timestamp entry. Timestamps can't be negative"},
		{name: "not_a_number", value: "foo", wantErr: "Failed to deserialize a timestamp entry from string foo"},
		{name: "empty", value: "", wantErr: "Unexpected empty value for timestamp"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DeserializeTimestamp(tc.value)
			if tc.wantErr != "" {
				var deserializationErr *DeserializationError
				require.ErrorAs(t, err, &deserializationErr)
				assert.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDeserializeDecimals(t *testing.T) {
	t.Run("amount", func(t *testing.T) {
		got, err := DeserializeAssetAmount("1.5")
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("1.5").Equal(got))

		got, err = DeserializeAssetAmount("0")
		require.NoError(t, err)
		assert.True(t, got.IsZero())

		_, err = DeserializeAssetAmount("-1")
		assert.EqualError(t, err, "Failed to deserialize an amount entry: amounts can't be negative")

		_, err = DeserializeAssetAmount("foo")
		assert.EqualError(t, err, "Failed to deserialize an amount entry: foo is not a number")

		_, err = DeserializeAssetAmount("")
		assert.EqualError(t, err, "Failed to deserialize an amount entry: empty value")
	})

	t.Run("price", func(t *testing.T) {
		got, err := DeserializePrice("320.1")
		require.NoError(t, err)
		assert.Equal(t, "320.1", got.String())

		_, err = DeserializePrice("0")
		assert.EqualError(t, err, "Failed to deserialize a price entry: prices should be positive")

		_, err = DeserializePrice("1..2")
		assert.EqualError(t, err, "Failed to deserialize a price entry: 1..2 is not a number")
	})

	t.Run("fee", func(t *testing.T) {
		got, err := DeserializeFee("0")
		require.NoError(t, err)
		assert.True(t, got.IsZero())

		_, err = DeserializeFee("-0.1")
		assert.EqualError(t, err, "Failed to deserialize a fee entry: fees can't be negative")
	})
}

func TestDeserializeLocation(t *testing.T) {
	for _, location := range entities.AllLocations {
		got, err := DeserializeLocation(location.String())
		require.NoError(t, err)
		assert.Equal(t, location, got)
	}

	_, err := DeserializeLocation("mtgox")
	assert.EqualError(t, err, "Failed to deserialize location symbol. Unknown symbol mtgox for location")
}

func TestDeserializeTradeType(t *testing.T) {
	for raw, want := range map[string]entities.TradeType{
		"buy":             entities.TradeTypeBuy,
		"sell":            entities.TradeTypeSell,
		"settlement buy":  entities.TradeTypeSettlementBuy,
		"settlement sell": entities.TradeTypeSettlementSell,
	} {
		got, err := DeserializeTradeType(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := DeserializeTradeType("BUY")
	assert.EqualError(t, err, "Failed to deserialize trade type symbol. Unknown symbol BUY for trade type")
}

func TestDeserializeTradePair(t *testing.T) {
	got, err := DeserializeTradePair("ETH_EUR")
	require.NoError(t, err)
	assert.Equal(t, entities.TradePair("ETH_EUR"), got)

	for _, pair := range []string{"ETHEUR", "ETH_", "_EUR", "ETH_EUR_BTC"} {
		_, err = DeserializeTradePair(pair)
		assert.EqualError(t, err, "Unprocessable pair "+pair+" encountered")
	}

	_, err = DeserializeTradePair("ETH_NOTANASSET")
	assert.EqualError(t, err, "Unknown asset NOTANASSET provided.")
}

func TestDeserializeAsset(t *testing.T) {
	asset, err := DeserializeAsset("BTC")
	require.NoError(t, err)
	assert.Equal(t, "BTC", asset.Identifier)

	_, err = DeserializeAsset("NOTANASSET")
	var deserializationErr *DeserializationError
	require.ErrorAs(t, err, &deserializationErr)
	assert.EqualError(t, err, "Unknown asset NOTANASSET provided.")
}
