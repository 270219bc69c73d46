package wallet

import (
	"crypto/sha512"
	"fmt"
	"strings"

	"github.com/ardikars/farm/pkg/crypto"
	"github.com/ardikars/farm/pkg/types"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// Seed stretching parameters (BIP-39).
const (
	seedIterations = 2048
	seedSaltPrefix = "mnemonic"
)

// NormalizePassphrase returns the NFKD-normalized UTF-8 bytes of a passphrase.
func NormalizePassphrase(passphrase string) []byte {
	return []byte(norm.NFKD.String(passphrase))
}

// PassphraseDigest returns SHA-256 of the normalized passphrase. Users may
// record it to check later that they typed the passphrase they meant to.
func PassphraseDigest(passphrase string) types.Hash {
	return crypto.StdHash(NormalizePassphrase(passphrase))
}

// SeedFromMnemonic derives a 512-bit seed from a mnemonic and optional passphrase
// using PBKDF2-HMAC-SHA512 as specified in BIP-39. Phrase and salt are both
// NFKD-normalized first, so differently composed but equivalent passphrases
// yield the same seed. The phrase is not validated.
func SeedFromMnemonic(mnemonic, passphrase string) []byte {
	password := []byte(norm.NFKD.String(mnemonic))
	salt := []byte(norm.NFKD.String(seedSaltPrefix + passphrase))
	return pbkdf2.Key(password, salt, seedIterations, SeedSize, sha512.New)
}

// MasterSeed encodes master entropy, checks the codec round trip and derives
// the master seed with the passphrase.
func MasterSeed(codec *Codec, entropy []byte, passphrase string) ([]byte, error) {
	words, err := codec.EncodeChecked(entropy)
	if err != nil {
		return nil, fmt.Errorf("encode master entropy: %w", err)
	}
	return SeedFromMnemonic(strings.Join(words, " "), passphrase), nil
}
