package pfclient

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// APIError is returned for every response with an error status.
type APIError struct {
	StatusCode int                    `json:"-"`
	Message    string                 `json:"error"`
	Extras     map[string]interface{} `json:"extras,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Extras) == 0 {
		return fmt.Sprintf("unexpected statusCode=%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("unexpected statusCode=%d: %s %v", e.StatusCode, e.Message, e.Extras)
}

type AssetData struct {
	Identifier      string  `json:"identifier"`
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name"`
	Active          bool    `json:"active"`
	AssetType       string  `json:"asset_type"`
	Started         *int64  `json:"started"`
	Ended           *int64  `json:"ended"`
	Forked          *string `json:"forked"`
	SwappedFor      *string `json:"swapped_for"`
	EthereumAddress *string `json:"ethereum_address"`
	Decimals        *int64  `json:"decimals"`
}

type EthToken struct {
	Identifier string `json:"identifier"`
	Address    string `json:"address"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Decimals   int    `json:"decimals"`
}

type User struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	Premium      bool   `json:"premium"`
	SyncApproval string `json:"sync_approval"`
}

type NewUserRequest struct {
	Name             string `json:"name"`
	Password         string `json:"password"`
	SyncApproval     string `json:"sync_approval,omitempty"`
	PremiumAPIKey    string `json:"premium_api_key,omitempty"`
	PremiumAPISecret string `json:"premium_api_secret,omitempty"`
}

type UserActionRequest struct {
	Name             string `json:"name"`
	Password         string `json:"password"`
	SyncApproval     string `json:"sync_approval,omitempty"`
	Action           string `json:"action,omitempty"`
	PremiumAPIKey    string `json:"premium_api_key,omitempty"`
	PremiumAPISecret string `json:"premium_api_secret,omitempty"`
}

type Trade struct {
	TradeID     string          `json:"trade_id,omitempty"`
	Timestamp   int64           `json:"timestamp"`
	Location    string          `json:"location"`
	Pair        string          `json:"pair"`
	TradeType   string          `json:"trade_type"`
	Amount      decimal.Decimal `json:"amount"`
	Rate        decimal.Decimal `json:"rate"`
	Fee         decimal.Decimal `json:"fee"`
	FeeCurrency string          `json:"fee_currency"`
	Link        string          `json:"link"`
	Notes       string          `json:"notes"`
}

// TradesQuery filters listed trades. Zero values are left out of the query.
type TradesQuery struct {
	FromTimestamp int64
	ToTimestamp   int64
	Location      string
}

type Balance struct {
	Amount   decimal.Decimal `json:"amount"`
	USDValue decimal.Decimal `json:"usd_value"`
}

type BlockchainBalances struct {
	PerAccount map[string]map[string]map[string]Balance `json:"per_account"`
	Totals     map[string]Balance                       `json:"totals"`
}

type TaskResult struct {
	TaskID  int64  `json:"task_id"`
	Status  string `json:"status"`
	Outcome any    `json:"outcome,omitempty"`
	Error   string `json:"error,omitempty"`
}
