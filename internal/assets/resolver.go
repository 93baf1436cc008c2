// Package assets resolves asset identifiers against the catalog bundled with the binary.
package assets

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/guregu/null"

	"github.com/stellar/portfolio-backend/internal/entities"
)

//go:embed data/all_assets.json
var bundledCatalog []byte

var ErrUnknownAsset = errors.New("unknown asset")

// UnknownAssetError is returned when an identifier is not part of the catalog.
type UnknownAssetError struct {
	Identifier string
}

func (e *UnknownAssetError) Error() string {
	return fmt.Sprintf("Unknown asset %s provided.", e.Identifier)
}

func (e *UnknownAssetError) Is(target error) bool {
	return target == ErrUnknownAsset
}

var assetTypeMapping = map[string]entities.AssetType{
	"fiat":                         entities.AssetTypeFiat,
	"own chain":                    entities.AssetTypeOwnChain,
	"ethereum token and own chain": entities.AssetTypeOwnChain,
	"ethereum token and more":      entities.AssetTypeEthTokenAndMore,
	"ethereum token":               entities.AssetTypeEthToken,
	"omni token":                   entities.AssetTypeOmniToken,
	"neo token":                    entities.AssetTypeNeoToken,
	"counterparty token":           entities.AssetTypeXCPToken,
	"bitshares token":              entities.AssetTypeBTSToken,
	"ardor token":                  entities.AssetTypeArdorToken,
	"nxt token":                    entities.AssetTypeNXTToken,
	"Ubiq token":                   entities.AssetTypeUbiqToken,
	"Nubits token":                 entities.AssetTypeNubitsToken,
	"Burst token":                  entities.AssetTypeBurstToken,
	"waves token":                  entities.AssetTypeWavesToken,
	"qtum token":                   entities.AssetTypeQtumToken,
	"stellar token":                entities.AssetTypeStellarToken,
	"tron token":                   entities.AssetTypeTronToken,
	"ontology token":               entities.AssetTypeOntologyToken,
	"exchange specific":            entities.AssetTypeExchangeSpecific,
	"vechain token":                entities.AssetTypeVechainToken,
	"binance token":                entities.AssetTypeBinanceToken,
	"eos token":                    entities.AssetTypeEOSToken,
}

type catalogEntry struct {
	Type                  string  `json:"type"`
	Symbol                string  `json:"symbol"`
	Name                  string  `json:"name"`
	Active                *bool   `json:"active"`
	Started               *int64  `json:"started"`
	Ended                 *int64  `json:"ended"`
	Forked                *string `json:"forked"`
	SwappedFor            *string `json:"swapped_for"`
	EthereumAddress       *string `json:"ethereum_address"`
	EthereumTokenDecimals *int64  `json:"ethereum_token_decimals"`
}

// Resolver answers lookups against a static asset catalog. The catalog is never
// modified after construction, so a Resolver is safe for concurrent use.
type Resolver struct {
	assets map[string]catalogEntry

	ethTokensOnce sync.Once
	ethTokens     []entities.EthTokenInfo
	ethTokensErr  error
}

var (
	defaultResolver     *Resolver
	defaultResolverOnce sync.Once
)

// Default returns the process wide resolver backed by the bundled catalog. The
// catalog is parsed on first use.
func Default() *Resolver {
	defaultResolverOnce.Do(func() {
		r, err := NewResolver(bundledCatalog)
		if err != nil {
			panic(fmt.Errorf("loading bundled asset catalog: %w", err))
		}
		defaultResolver = r
	})
	return defaultResolver
}

// NewResolver builds a resolver from a JSON catalog of identifier to asset entry.
func NewResolver(catalog []byte) (*Resolver, error) {
	var assets map[string]catalogEntry
	if err := json.Unmarshal(catalog, &assets); err != nil {
		return nil, fmt.Errorf("decoding asset catalog: %w", err)
	}

	for identifier, entry := range assets {
		if _, ok := assetTypeMapping[entry.Type]; !ok {
			return nil, fmt.Errorf("asset %s has unknown type %q", identifier, entry.Type)
		}
	}

	return &Resolver{assets: assets}, nil
}

// IsIdentifierCanonical checks if an asset identifier is a catalog key.
func (r *Resolver) IsIdentifierCanonical(identifier string) bool {
	_, ok := r.assets[identifier]
	return ok
}

// GetAssetData returns all catalog data of the given asset.
func (r *Resolver) GetAssetData(identifier string) (entities.AssetData, error) {
	entry, ok := r.assets[identifier]
	if !ok {
		return entities.AssetData{}, &UnknownAssetError{Identifier: identifier}
	}

	active := true
	if entry.Active != nil {
		active = *entry.Active
	}

	return entities.AssetData{
		Identifier:      identifier,
		Symbol:          entry.Symbol,
		Name:            entry.Name,
		Active:          active,
		AssetType:       assetTypeMapping[entry.Type],
		Started:         null.IntFromPtr(entry.Started),
		Ended:           null.IntFromPtr(entry.Ended),
		Forked:          null.StringFromPtr(entry.Forked),
		SwappedFor:      null.StringFromPtr(entry.SwappedFor),
		EthereumAddress: null.StringFromPtr(entry.EthereumAddress),
		Decimals:        null.IntFromPtr(entry.EthereumTokenDecimals),
	}, nil
}

// GetAllEthTokenInfo lists every ethereum token of the catalog ordered by identifier.
// The list is computed once and reused by later calls.
func (r *Resolver) GetAllEthTokenInfo() ([]entities.EthTokenInfo, error) {
	r.ethTokensOnce.Do(func() {
		r.ethTokens, r.ethTokensErr = r.collectEthTokens()
	})
	return r.ethTokens, r.ethTokensErr
}

func (r *Resolver) collectEthTokens() ([]entities.EthTokenInfo, error) {
	tokens := make([]entities.EthTokenInfo, 0)
	for _, identifier := range r.Identifiers() {
		entry := r.assets[identifier]
		if !assetTypeMapping[entry.Type].IsEthToken() {
			continue
		}

		if entry.EthereumAddress == nil || entry.EthereumTokenDecimals == nil {
			return nil, fmt.Errorf("ethereum token %s is missing its address or decimals", identifier)
		}
		address, err := ToChecksumAddress(*entry.EthereumAddress)
		if err != nil {
			return nil, fmt.Errorf("checksumming address of ethereum token %s: %w", identifier, err)
		}

		tokens = append(tokens, entities.EthTokenInfo{
			Identifier: identifier,
			Address:    address,
			Symbol:     entry.Symbol,
			Name:       entry.Name,
			Decimals:   int(*entry.EthereumTokenDecimals),
		})
	}
	return tokens, nil
}

// Identifiers returns all catalog identifiers in lexical order.
func (r *Resolver) Identifiers() []string {
	identifiers := make([]string, 0, len(r.assets))
	for identifier := range r.assets {
		identifiers = append(identifiers, identifier)
	}
	sort.Strings(identifiers)
	return identifiers
}

func IsIdentifierCanonical(identifier string) bool {
	return Default().IsIdentifierCanonical(identifier)
}

func GetAssetData(identifier string) (entities.AssetData, error) {
	return Default().GetAssetData(identifier)
}

func GetAllEthTokenInfo() ([]entities.EthTokenInfo, error) {
	return Default().GetAllEthTokenInfo()
}
