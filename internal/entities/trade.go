package entities

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TradeType string

const (
	TradeTypeBuy            TradeType = "buy"
	TradeTypeSell           TradeType = "sell"
	TradeTypeSettlementBuy  TradeType = "settlement buy"
	TradeTypeSettlementSell TradeType = "settlement sell"
)

var tradeTypeMap = map[string]TradeType{
	"buy":             TradeTypeBuy,
	"sell":            TradeTypeSell,
	"settlement buy":  TradeTypeSettlementBuy,
	"settlement sell": TradeTypeSettlementSell,
}

func (t TradeType) String() string {
	return string(t)
}

func ParseTradeType(s string) (TradeType, error) {
	t, ok := tradeTypeMap[s]
	if !ok {
		return "", fmt.Errorf("unknown trade type %q", s)
	}
	return t, nil
}

type TradeID = uuid.UUID

// Trade is a single exchange of Amount units of the pair's base asset at Rate units of
// the quote asset each.
type Trade struct {
	ID          TradeID         `db:"id"`
	Username    string          `db:"username"`
	Timestamp   Timestamp       `db:"timestamp"`
	Location    Location        `db:"location"`
	Pair        TradePair       `db:"pair"`
	TradeType   TradeType       `db:"trade_type"`
	Amount      decimal.Decimal `db:"amount"`
	Rate        decimal.Decimal `db:"rate"`
	Fee         decimal.Decimal `db:"fee"`
	FeeCurrency string          `db:"fee_currency"`
	Link        string          `db:"link"`
	Notes       string          `db:"notes"`
}

// TradePair is a BASE_QUOTE pair of asset identifiers.
type TradePair string

func NewTradePair(base, quote string) TradePair {
	return TradePair(base + "_" + quote)
}

func (p TradePair) String() string {
	return string(p)
}

// TradeFilter narrows a trades query. Nil fields don't filter.
type TradeFilter struct {
	FromTimestamp *Timestamp
	ToTimestamp   *Timestamp
	Location      *Location
}
