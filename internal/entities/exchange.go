package entities

import set "github.com/deckarep/golang-set/v2"

// SupportedExchanges are the locations an exchange connection can be registered for.
var SupportedExchanges = set.NewSet(
	LocationKraken,
	LocationPoloniex,
	LocationBittrex,
	LocationBinance,
	LocationBitmex,
	LocationCoinbase,
	LocationCoinbasePro,
	LocationGemini,
)

func IsSupportedExchange(name string) bool {
	return SupportedExchanges.Contains(Location(name))
}
