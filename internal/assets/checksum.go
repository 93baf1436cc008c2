package assets

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ToChecksumAddress returns the EIP-55 mixed case form of an ethereum address.
func ToChecksumAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("address %q is not a 40 hex character ethereum address", address)
	}
	return common.HexToAddress(address).Hex(), nil
}
