package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// ComputeEntryID computes a deterministic watchlist entry id using SHA256.
// Formula: SHA256(SYMBOL|chain|contract_address) with the symbol uppercased,
// so re-adding the same token always yields the same id.
// Returns hex-encoded hash (64 characters).
func ComputeEntryID(symbol, chain, contractAddress string) string {
	data := fmt.Sprintf("%s|%s|%s",
		strings.ToUpper(symbol),
		chain,
		contractAddress,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// ComputeWhaleTxID computes a deterministic whale transaction id using SHA256.
// Formula: SHA256(tx_hash|wallet_address|SYMBOL)
// Returns hex-encoded hash (64 characters).
func ComputeWhaleTxID(txHash, walletAddress, symbol string) string {
	data := fmt.Sprintf("%s|%s|%s",
		txHash,
		walletAddress,
		strings.ToUpper(symbol),
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
