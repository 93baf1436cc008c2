package entities

import (
	"encoding/json"
	"fmt"

	"github.com/guregu/null"
)

type AssetType int

const (
	AssetTypeFiat AssetType = iota + 1
	AssetTypeOwnChain
	AssetTypeEthToken
	AssetTypeOmniToken
	AssetTypeNeoToken
	AssetTypeXCPToken
	AssetTypeBTSToken
	AssetTypeArdorToken
	AssetTypeNXTToken
	AssetTypeUbiqToken
	AssetTypeNubitsToken
	AssetTypeBurstToken
	AssetTypeWavesToken
	AssetTypeQtumToken
	AssetTypeStellarToken
	AssetTypeTronToken
	AssetTypeOntologyToken
	AssetTypeEthTokenAndMore
	AssetTypeExchangeSpecific
	AssetTypeVechainToken
	AssetTypeBinanceToken
	AssetTypeEOSToken
)

var assetTypeNames = map[AssetType]string{
	AssetTypeFiat:             "fiat",
	AssetTypeOwnChain:         "own chain",
	AssetTypeEthToken:         "ethereum token",
	AssetTypeOmniToken:        "omni token",
	AssetTypeNeoToken:         "neo token",
	AssetTypeXCPToken:         "counterparty token",
	AssetTypeBTSToken:         "bitshares token",
	AssetTypeArdorToken:       "ardor token",
	AssetTypeNXTToken:         "nxt token",
	AssetTypeUbiqToken:        "ubiq token",
	AssetTypeNubitsToken:      "nubits token",
	AssetTypeBurstToken:       "burst token",
	AssetTypeWavesToken:       "waves token",
	AssetTypeQtumToken:        "qtum token",
	AssetTypeStellarToken:     "stellar token",
	AssetTypeTronToken:        "tron token",
	AssetTypeOntologyToken:    "ontology token",
	AssetTypeEthTokenAndMore:  "ethereum token and more",
	AssetTypeExchangeSpecific: "exchange specific",
	AssetTypeVechainToken:     "vechain token",
	AssetTypeBinanceToken:     "binance token",
	AssetTypeEOSToken:         "eos token",
}

func (t AssetType) String() string {
	if name, ok := assetTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown asset type %d", int(t))
}

func (t AssetType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// IsEthToken reports whether assets of this type live on ethereum as ERC20 tokens.
func (t AssetType) IsEthToken() bool {
	return t == AssetTypeEthToken || t == AssetTypeEthTokenAndMore
}

// AssetData is the full description of a catalog asset.
type AssetData struct {
	Identifier      string      `json:"identifier"`
	Symbol          string      `json:"symbol"`
	Name            string      `json:"name"`
	Active          bool        `json:"active"`
	AssetType       AssetType   `json:"asset_type"`
	Started         null.Int    `json:"started"`
	Ended           null.Int    `json:"ended"`
	Forked          null.String `json:"forked"`
	SwappedFor      null.String `json:"swapped_for"`
	EthereumAddress null.String `json:"ethereum_address"`
	Decimals        null.Int    `json:"decimals"`
}

type EthTokenInfo struct {
	Identifier string `json:"identifier"`
	Address    string `json:"address"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Decimals   int    `json:"decimals"`
}
