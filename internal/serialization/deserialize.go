// Package serialization turns raw user or exchange provided values into domain types.
package serialization

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stellar/portfolio-backend/internal/assets"
	"github.com/stellar/portfolio-backend/internal/entities"
)

// DeserializationError is returned when a raw value can't be turned into the requested type.
type DeserializationError struct {
	Message string
}

func (e *DeserializationError) Error() string {
	return e.Message
}

func newDeserializationError(format string, args ...interface{}) *DeserializationError {
	return &DeserializationError{Message: fmt.Sprintf(format, args...)}
}

// DeserializeTimestamp accepts non-negative integer seconds since epoch that fit in an int64.
func DeserializeTimestamp(value string) (entities.Timestamp, error) {
	if value == "" {
		return 0, newDeserializationError("Unexpected empty value for timestamp")
	}

	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return 0, newDeserializationError("Failed to deserialize a timestamp entry from string %s", value)
		}
		if !strings.HasPrefix(value, "-") {
			return 0, newDeserializationError("Failed to deserialize a timestamp entry. Timestamp %s is out of range", value)
		}
	}
	if seconds < 0 || err != nil {
		return 0, newDeserializationError("Failed to deserialize a timestamp entry. Timestamps can't be negative")
	}
	return entities.Timestamp(seconds), nil
}

func deserializeDecimal(value, entry string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, newDeserializationError("Failed to deserialize %s entry: empty value", entry)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, newDeserializationError("Failed to deserialize %s entry: %s is not a number", entry, value)
	}
	return d, nil
}

// DeserializeAssetAmount parses a non-negative amount of an asset.
func DeserializeAssetAmount(value string) (decimal.Decimal, error) {
	amount, err := deserializeDecimal(value, "an amount")
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, newDeserializationError("Failed to deserialize an amount entry: amounts can't be negative")
	}
	return amount, nil
}

// DeserializePrice parses a strictly positive price.
func DeserializePrice(value string) (decimal.Decimal, error) {
	price, err := deserializeDecimal(value, "a price")
	if err != nil {
		return decimal.Zero, err
	}
	if !price.IsPositive() {
		return decimal.Zero, newDeserializationError("Failed to deserialize a price entry: prices should be positive")
	}
	return price, nil
}

// DeserializeFee parses a non-negative fee.
func DeserializeFee(value string) (decimal.Decimal, error) {
	fee, err := deserializeDecimal(value, "a fee")
	if err != nil {
		return decimal.Zero, err
	}
	if fee.IsNegative() {
		return decimal.Zero, newDeserializationError("Failed to deserialize a fee entry: fees can't be negative")
	}
	return fee, nil
}

func DeserializeLocation(value string) (entities.Location, error) {
	location, err := entities.ParseLocation(value)
	if err != nil {
		return "", newDeserializationError("Failed to deserialize location symbol. Unknown symbol %s for location", value)
	}
	return location, nil
}

func DeserializeTradeType(value string) (entities.TradeType, error) {
	tradeType, err := entities.ParseTradeType(value)
	if err != nil {
		return "", newDeserializationError("Failed to deserialize trade type symbol. Unknown symbol %s for trade type", value)
	}
	return tradeType, nil
}

// DeserializeTradePair parses a BASE_QUOTE pair whose both sides are known assets.
func DeserializeTradePair(value string) (entities.TradePair, error) {
	parts := strings.Split(value, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", newDeserializationError("Unprocessable pair %s encountered", value)
	}
	for _, identifier := range parts {
		if _, err := assets.NewAsset(identifier); err != nil {
			return "", newDeserializationError("%s", err.Error())
		}
	}
	return entities.NewTradePair(parts[0], parts[1]), nil
}

// DeserializeAsset returns the catalog asset with the given identifier.
func DeserializeAsset(value string) (assets.Asset, error) {
	asset, err := assets.NewAsset(value)
	if err != nil {
		return assets.Asset{}, newDeserializationError("%s", err.Error())
	}
	return asset, nil
}
