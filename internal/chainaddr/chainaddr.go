// Package chainaddr validates Solana addresses and classifies them as wallet
// or program-derived accounts.
package chainaddr

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// addressLen is the decoded length of a Solana public key.
const addressLen = 32

// Validate checks that addr is a well-formed Solana address: base58 text
// decoding to exactly 32 bytes. An empty address is accepted — watchlist
// entries sourced from page context may not carry a contract address.
func Validate(addr string) error {
	if addr == "" {
		return nil
	}

	decoded, err := base58.Decode(addr)
	if err != nil {
		return fmt.Errorf("decode address: %w", err)
	}
	if len(decoded) != addressLen {
		return fmt.Errorf("address is %d bytes, want %d", len(decoded), addressLen)
	}
	return nil
}

// IsOnCurve reports whether the address decodes to a point on the ed25519
// curve. Wallet public keys are on the curve; program-derived addresses
// (pools, vaults) are deliberately off it.
func IsOnCurve(addr string) (bool, error) {
	decoded, err := base58.Decode(addr)
	if err != nil {
		return false, fmt.Errorf("decode address: %w", err)
	}
	if len(decoded) != addressLen {
		return false, fmt.Errorf("address is %d bytes, want %d", len(decoded), addressLen)
	}

	_, err = new(edwards25519.Point).SetBytes(decoded)
	return err == nil, nil
}

// WalletLabel returns a display label for a whale wallet address: addresses
// off the curve are program accounts (pool vaults), everything else is a
// plain wallet. Invalid addresses label as unknown.
func WalletLabel(addr string) string {
	onCurve, err := IsOnCurve(addr)
	if err != nil {
		return "Unknown"
	}
	if !onCurve {
		return "Program Account"
	}
	return "Wallet"
}
