package entities

import "github.com/shopspring/decimal"

type Balance struct {
	Amount   decimal.Decimal `json:"amount"`
	USDValue decimal.Decimal `json:"usd_value"`
}

func (b Balance) Add(other Balance) Balance {
	return Balance{
		Amount:   b.Amount.Add(other.Amount),
		USDValue: b.USDValue.Add(other.USDValue),
	}
}

// AssetBalances maps asset identifiers to their balance.
type AssetBalances map[string]Balance

type Tag struct {
	Name            string `json:"name" db:"name"`
	Description     string `json:"description" db:"description"`
	BackgroundColor string `json:"background_color" db:"background_color"`
	ForegroundColor string `json:"foreground_color" db:"foreground_color"`
}

type ManuallyTrackedBalance struct {
	Asset    string          `json:"asset" db:"asset"`
	Label    string          `json:"label" db:"label"`
	Amount   decimal.Decimal `json:"amount" db:"amount"`
	Location Location        `json:"location" db:"location"`
	Tags     []string        `json:"tags" db:"-"`
}

type Blockchain string

const (
	BlockchainBitcoin  Blockchain = "BTC"
	BlockchainEthereum Blockchain = "ETH"
)

var AllBlockchains = []Blockchain{BlockchainBitcoin, BlockchainEthereum}

type BlockchainAccount struct {
	Blockchain Blockchain `json:"blockchain" db:"blockchain"`
	Address    string     `json:"address" db:"address"`
	Label      string     `json:"label" db:"label"`
}
