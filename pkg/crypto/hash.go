// Package crypto provides hashing and key primitives for the key tool.
package crypto

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/ardikars/farm/pkg/types"
	"github.com/zeebo/blake3"
)

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return blake3.Sum256(data)
}

// StdHash computes a SHA-256 hash of the input data.
// It is the hash of the mnemonic checksum and of every derivation chain link.
func StdHash(data []byte) types.Hash {
	return sha256.Sum256(data)
}

// AddressFromPubKey derives an address payload from a compressed public key.
// Payload = BLAKE3(compressed_pubkey).
func AddressFromPubKey(pubKey []byte) types.Hash {
	return Hash(pubKey)
}

// Fingerprint returns the first four bytes of SHA-256(pubKey) as a
// big-endian integer. It identifies a key without revealing it.
func Fingerprint(pubKey []byte) uint32 {
	h := StdHash(pubKey)
	return binary.BigEndian.Uint32(h[:4])
}
