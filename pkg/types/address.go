package types

import "fmt"

// Address HRP (human-readable part) constants for bech32m encoding.
const (
	MainnetHRP = "xck"
	TestnetHRP = "txck"
)

// EncodeAddress encodes a 32-byte address payload as a bech32m string
// under the given HRP (e.g. "xck1...").
func EncodeAddress(hrp string, payload Hash) (string, error) {
	s, err := Bech32mEncode(hrp, payload[:])
	if err != nil {
		return "", fmt.Errorf("encode address: %w", err)
	}
	return s, nil
}

// ParseAddress decodes a bech32m address into its HRP and 32-byte payload.
func ParseAddress(s string) (string, Hash, error) {
	if s == "" {
		return "", Hash{}, fmt.Errorf("empty address")
	}
	hrp, data, err := Bech32mDecode(s)
	if err != nil {
		return "", Hash{}, fmt.Errorf("invalid address: %w", err)
	}
	if len(data) != HashSize {
		return "", Hash{}, fmt.Errorf("address payload must be %d bytes, got %d", HashSize, len(data))
	}
	var h Hash
	copy(h[:], data)
	return hrp, h, nil
}
