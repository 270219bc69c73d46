// Package wallet implements the mnemonic codec, seed derivation and the
// index-chained key derivation of the key tool.
package wallet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ardikars/farm/pkg/crypto"
	"github.com/tyler-smith/go-bip39"
)

// MnemonicEntropyBits is the entropy size for 24-word mnemonics.
const MnemonicEntropyBits = 256

// ChainEntropySize is the entropy length of every chain link, in bytes.
const ChainEntropySize = MnemonicEntropyBits / 8

// ValidEntropyLength reports whether n bytes of entropy can be encoded.
func ValidEntropyLength(n int) bool {
	switch n {
	case 16, 20, 24, 28, 32:
		return true
	}
	return false
}

// ValidWordCount reports whether a phrase of n words can be decoded.
func ValidWordCount(n int) bool {
	switch n {
	case 12, 15, 18, 21, 24:
		return true
	}
	return false
}

// GenerateEntropy returns bits/8 bytes from the system's secure random
// source. bits must be 128, 160, 192, 224 or 256.
func GenerateEntropy(bits int) ([]byte, error) {
	if !ValidEntropyLength(bits / 8) || bits%8 != 0 {
		return nil, fmt.Errorf("%w: %d entropy bits", ErrInvalidLength, bits)
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return nil, fmt.Errorf("generate entropy: %w", err)
	}
	return entropy, nil
}

// Codec converts entropy to mnemonic words and back using a dictionary.
// The checksum is the first len(entropy)/4 bits of SHA-256(entropy).
type Codec struct {
	words *WordList
}

// NewCodec creates a codec over the given dictionary.
func NewCodec(wl *WordList) *Codec {
	return &Codec{words: wl}
}

// NewEnglishCodec creates a codec over the BIP-39 English dictionary.
func NewEnglishCodec() *Codec {
	return NewCodec(EnglishWordList())
}

// WordList returns the codec's dictionary.
func (c *Codec) WordList() *WordList {
	return c.words
}

// Encode converts entropy into its mnemonic words.
func (c *Codec) Encode(entropy []byte) ([]string, error) {
	if !ValidEntropyLength(len(entropy)) {
		return nil, fmt.Errorf("%w: entropy is %d bytes, want one of 16, 20, 24, 28, 32",
			ErrInvalidLength, len(entropy))
	}

	// Checksum is at most 8 bits, so the first digest byte covers it.
	checksum := crypto.StdHash(entropy)
	buf := make([]byte, len(entropy)+1)
	copy(buf, entropy)
	buf[len(entropy)] = checksum[0]

	totalBits := len(entropy)*8 + len(entropy)/4
	if totalBits%bitsPerWord != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a whole number of words", ErrInvariant, totalBits)
	}

	words := make([]string, totalBits/bitsPerWord)
	for i := range words {
		w, err := c.words.WordAt(readBits(buf, i*bitsPerWord, bitsPerWord))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		words[i] = w
	}
	return words, nil
}

// EncodeString converts entropy into a single-space separated phrase.
func (c *Codec) EncodeString(entropy []byte) (string, error) {
	words, err := c.Encode(entropy)
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// Decode converts mnemonic words back into entropy, verifying the checksum.
func (c *Codec) Decode(words []string) ([]byte, error) {
	if !ValidWordCount(len(words)) {
		return nil, fmt.Errorf("%w: phrase has %d words, want one of 12, 15, 18, 21, 24",
			ErrInvalidLength, len(words))
	}

	totalBits := len(words) * bitsPerWord
	buf := make([]byte, (totalBits+7)/8)
	for i, w := range words {
		idx, err := c.words.IndexOf(w)
		if err != nil {
			return nil, &UnknownWordError{Word: w, Position: i + 1}
		}
		writeBits(buf, i*bitsPerWord, bitsPerWord, idx)
	}

	csBits := len(words) / 3
	entBits := totalBits - csBits
	if entBits%32 != 0 {
		return nil, fmt.Errorf("%w: %d entropy bits is not a multiple of 32", ErrInvariant, entBits)
	}

	entropy := make([]byte, entBits/8)
	copy(entropy, buf)

	supplied := readBits(buf, entBits, csBits)
	digest := crypto.StdHash(entropy)
	expected := uint16(digest[0] >> (8 - csBits))
	if supplied != expected {
		return nil, ErrChecksumMismatch
	}
	return entropy, nil
}

// DecodeString splits a phrase on runs of whitespace and decodes it.
func (c *Codec) DecodeString(phrase string) ([]byte, error) {
	return c.Decode(strings.Fields(phrase))
}

// Validate checks word count, dictionary membership and checksum.
func (c *Codec) Validate(phrase string) error {
	_, err := c.DecodeString(phrase)
	return err
}

// EncodeChecked encodes entropy and verifies the words decode back to the
// same bytes. A mismatch means the codec itself is broken and is reported
// as ErrInvariant.
func (c *Codec) EncodeChecked(entropy []byte) ([]string, error) {
	words, err := c.Encode(entropy)
	if err != nil {
		return nil, err
	}
	decoded, err := c.Decode(words)
	if err != nil {
		return nil, fmt.Errorf("%w: mnemonic does not decode: %v", ErrInvariant, err)
	}
	if !bytes.Equal(decoded, entropy) {
		return nil, fmt.Errorf("%w: mnemonic round trip mismatch", ErrInvariant)
	}
	return words, nil
}

// readBits returns n (<= 16) bits of buf starting at bit offset off, big-endian.
func readBits(buf []byte, off, n int) uint16 {
	var v uint16
	for i := off; i < off+n; i++ {
		bit := (buf[i/8] >> (7 - uint(i%8))) & 1
		v = v<<1 | uint16(bit)
	}
	return v
}

// writeBits stores the low n bits of v into buf at bit offset off, big-endian.
// buf must be zeroed at the target bits.
func writeBits(buf []byte, off, n int, v uint16) {
	for i := 0; i < n; i++ {
		if (v>>(n-1-i))&1 == 1 {
			pos := off + i
			buf[pos/8] |= 1 << (7 - uint(pos%8))
		}
	}
}
