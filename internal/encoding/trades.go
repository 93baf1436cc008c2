package encoding

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/serialization"
)

type TradesQueryRequest struct {
	FromTimestamp Value `json:"from_timestamp" query:"from_timestamp" validate:"omitempty,timestamp"`
	ToTimestamp   Value `json:"to_timestamp"   query:"to_timestamp"   validate:"omitempty,timestamp"`
	Location      Value `json:"location"       query:"location"       validate:"omitempty,location"`
}

// Load turns a validated request into a trade filter.
func (r TradesQueryRequest) Load() (entities.TradeFilter, error) {
	filter := entities.TradeFilter{}
	if r.FromTimestamp.IsSet() {
		ts, err := serialization.DeserializeTimestamp(r.FromTimestamp.String())
		if err != nil {
			return filter, fmt.Errorf("loading from_timestamp: %w", err)
		}
		filter.FromTimestamp = &ts
	}
	if r.ToTimestamp.IsSet() {
		ts, err := serialization.DeserializeTimestamp(r.ToTimestamp.String())
		if err != nil {
			return filter, fmt.Errorf("loading to_timestamp: %w", err)
		}
		filter.ToTimestamp = &ts
	}
	if r.Location.IsSet() {
		location, err := serialization.DeserializeLocation(r.Location.String())
		if err != nil {
			return filter, fmt.Errorf("loading location: %w", err)
		}
		filter.Location = &location
	}
	return filter, nil
}

type TradeRequest struct {
	Timestamp   Value  `json:"timestamp"    validate:"required,timestamp"`
	Location    Value  `json:"location"     validate:"required,location"`
	Pair        string `json:"pair"         validate:"required,trade_pair"`
	TradeType   Value  `json:"trade_type"   validate:"required,trade_type"`
	Amount      Value  `json:"amount"       validate:"required,amount"`
	Rate        Value  `json:"rate"         validate:"required,price"`
	Fee         Value  `json:"fee"          validate:"required,fee"`
	FeeCurrency Value  `json:"fee_currency" validate:"required,asset"`
	Link        string `json:"link"`
	Notes       string `json:"notes"`
}

// Load turns a validated request into a trade without an ID.
func (r TradeRequest) Load() (entities.Trade, error) {
	timestamp, err := serialization.DeserializeTimestamp(r.Timestamp.String())
	if err != nil {
		return entities.Trade{}, fmt.Errorf("loading timestamp: %w", err)
	}
	location, err := serialization.DeserializeLocation(r.Location.String())
	if err != nil {
		return entities.Trade{}, fmt.Errorf("loading location: %w", err)
	}
	pair, err := serialization.DeserializeTradePair(r.Pair)
	if err != nil {
		return entities.Trade{}, fmt.Errorf("loading pair: %w", err)
	}
	tradeType, err := serialization.DeserializeTradeType(r.TradeType.String())
	if err != nil {
		return entities.Trade{}, fmt.Errorf("loading trade_type: %w", err)
	}
	amount, err := serialization.DeserializeAssetAmount(r.Amount.String())
	if err != nil {
		return entities.Trade{}, fmt.Errorf("loading amount: %w", err)
	}
	rate, err := serialization.DeserializePrice(r.Rate.String())
	if err != nil {
		return entities.Trade{}, fmt.Errorf("loading rate: %w", err)
	}
	fee, err := serialization.DeserializeFee(r.Fee.String())
	if err != nil {
		return entities.Trade{}, fmt.Errorf("loading fee: %w", err)
	}
	feeCurrency, err := serialization.DeserializeAsset(r.FeeCurrency.String())
	if err != nil {
		return entities.Trade{}, fmt.Errorf("loading fee_currency: %w", err)
	}

	return entities.Trade{
		Timestamp:   timestamp,
		Location:    location,
		Pair:        pair,
		TradeType:   tradeType,
		Amount:      amount,
		Rate:        rate,
		Fee:         fee,
		FeeCurrency: feeCurrency.Identifier,
		Link:        r.Link,
		Notes:       r.Notes,
	}, nil
}

type TradePatchRequest struct {
	TradeRequest
	TradeID string `json:"trade_id" validate:"required,uuid"`
}

func (r TradePatchRequest) Load() (entities.Trade, error) {
	trade, err := r.TradeRequest.Load()
	if err != nil {
		return entities.Trade{}, err
	}
	trade.ID, err = uuid.Parse(r.TradeID)
	if err != nil {
		return entities.Trade{}, fmt.Errorf("loading trade_id: %w", err)
	}
	return trade, nil
}

type TradeDeleteRequest struct {
	TradeID string `json:"trade_id" validate:"required,uuid"`
}

func (r TradeDeleteRequest) Load() (entities.TradeID, error) {
	id, err := uuid.Parse(r.TradeID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("loading trade_id: %w", err)
	}
	return id, nil
}

// TradeResponse is the serialized form of a trade. Decimal values are rendered as strings.
type TradeResponse struct {
	TradeID     string             `json:"trade_id"`
	Timestamp   entities.Timestamp `json:"timestamp"`
	Location    entities.Location  `json:"location"`
	Pair        entities.TradePair `json:"pair"`
	TradeType   entities.TradeType `json:"trade_type"`
	Amount      decimal.Decimal    `json:"amount"`
	Rate        decimal.Decimal    `json:"rate"`
	Fee         decimal.Decimal    `json:"fee"`
	FeeCurrency string             `json:"fee_currency"`
	Link        string             `json:"link"`
	Notes       string             `json:"notes"`
}

func NewTradeResponse(trade entities.Trade) TradeResponse {
	return TradeResponse{
		TradeID:     trade.ID.String(),
		Timestamp:   trade.Timestamp,
		Location:    trade.Location,
		Pair:        trade.Pair,
		TradeType:   trade.TradeType,
		Amount:      trade.Amount,
		Rate:        trade.Rate,
		Fee:         trade.Fee,
		FeeCurrency: trade.FeeCurrency,
		Link:        trade.Link,
		Notes:       trade.Notes,
	}
}

func NewTradesResponse(trades []entities.Trade) []TradeResponse {
	resp := make([]TradeResponse, 0, len(trades))
	for _, trade := range trades {
		resp = append(resp, NewTradeResponse(trade))
	}
	return resp
}
