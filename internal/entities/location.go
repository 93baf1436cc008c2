package entities

import "fmt"

// Location is the place where a trade happened or a balance is held.
type Location string

const (
	LocationExternal    Location = "external"
	LocationKraken      Location = "kraken"
	LocationPoloniex    Location = "poloniex"
	LocationBittrex     Location = "bittrex"
	LocationBinance     Location = "binance"
	LocationBitmex      Location = "bitmex"
	LocationCoinbase    Location = "coinbase"
	LocationTotal       Location = "total"
	LocationBanks       Location = "banks"
	LocationBlockchain  Location = "blockchain"
	LocationCoinbasePro Location = "coinbasepro"
	LocationGemini      Location = "gemini"
	LocationEquities    Location = "equities"
	LocationRealEstate  Location = "real estate"
	LocationCommodities Location = "commodities"
	LocationCryptocom   Location = "crypto.com"
)

var AllLocations = []Location{
	LocationExternal,
	LocationKraken,
	LocationPoloniex,
	LocationBittrex,
	LocationBinance,
	LocationBitmex,
	LocationCoinbase,
	LocationTotal,
	LocationBanks,
	LocationBlockchain,
	LocationCoinbasePro,
	LocationGemini,
	LocationEquities,
	LocationRealEstate,
	LocationCommodities,
	LocationCryptocom,
}

func (l Location) String() string {
	return string(l)
}

func (l Location) IsValid() bool {
	for _, known := range AllLocations {
		if l == known {
			return true
		}
	}
	return false
}

// ParseLocation returns the Location named by s.
func ParseLocation(s string) (Location, error) {
	l := Location(s)
	if !l.IsValid() {
		return "", fmt.Errorf("unknown location %q", s)
	}
	return l, nil
}
