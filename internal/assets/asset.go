package assets

import (
	"encoding/json"
	"fmt"
)

// Asset is a catalog asset referenced by its canonical identifier.
type Asset struct {
	Identifier string
}

// NewAsset returns the asset with the given identifier from the bundled catalog.
func NewAsset(identifier string) (Asset, error) {
	return Default().Asset(identifier)
}

func (r *Resolver) Asset(identifier string) (Asset, error) {
	if !r.IsIdentifierCanonical(identifier) {
		return Asset{}, &UnknownAssetError{Identifier: identifier}
	}
	return Asset{Identifier: identifier}, nil
}

func (a Asset) String() string {
	return a.Identifier
}

func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Identifier)
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	var identifier string
	if err := json.Unmarshal(data, &identifier); err != nil {
		return fmt.Errorf("asset identifier should be a string: %w", err)
	}
	asset, err := NewAsset(identifier)
	if err != nil {
		return err
	}
	*a = asset
	return nil
}
