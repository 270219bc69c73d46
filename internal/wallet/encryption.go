package wallet

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Sealed layout: salt(32) | memory(4) | iterations(4) | parallelism(1) | nonce(24) | ciphertext
const (
	SaltSize   = 32
	headerSize = SaltSize + 4 + 4 + 1

	// maxArgonMemory bounds the memory cost accepted from a sealed header (4 GiB).
	maxArgonMemory = 4 * 1024 * 1024
)

// ErrWrongPassword is returned when sealed data fails authentication.
var ErrWrongPassword = errors.New("wrong password or corrupted key file")

// EncryptionParams holds Argon2id parameters.
type EncryptionParams struct {
	Memory      uint32 // in KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultParams returns recommended Argon2id parameters.
func DefaultParams() EncryptionParams {
	return EncryptionParams{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 4,
	}
}

func (p EncryptionParams) validate() error {
	if p.Memory == 0 || p.Memory > maxArgonMemory {
		return fmt.Errorf("argon2 memory %d KiB out of range", p.Memory)
	}
	if p.Iterations == 0 {
		return fmt.Errorf("argon2 iterations must be positive")
	}
	if p.Parallelism == 0 {
		return fmt.Errorf("argon2 parallelism must be positive")
	}
	return nil
}

// newCipher derives the Argon2id key for password and salt and returns the
// XChaCha20-Poly1305 AEAD built from it. The derived key is zeroed.
func newCipher(password, salt []byte, params EncryptionParams) (cipher.AEAD, error) {
	key := argon2.IDKey(password, salt, params.Iterations, params.Memory, params.Parallelism, chacha20poly1305.KeySize)
	defer zero(key)
	return chacha20poly1305.NewX(key)
}

// Encrypt seals data under password using Argon2id + XChaCha20-Poly1305.
func Encrypt(data, password []byte, params EncryptionParams) ([]byte, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	aead, err := newCipher(password, salt, params)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, headerSize+len(nonce)+len(data)+chacha20poly1305.Overhead)
	out = append(out, salt...)
	out = binary.LittleEndian.AppendUint32(out, params.Memory)
	out = binary.LittleEndian.AppendUint32(out, params.Iterations)
	out = append(out, params.Parallelism)
	out = append(out, nonce...)
	// The header is bound as associated data so tampered parameters fail to open.
	return aead.Seal(out, nonce, data, out[:headerSize]), nil
}

// Decrypt opens data sealed by Encrypt.
func Decrypt(sealed, password []byte) ([]byte, error) {
	nonceSize := chacha20poly1305.NonceSizeX
	minSize := headerSize + nonceSize + chacha20poly1305.Overhead
	if len(sealed) < minSize {
		return nil, fmt.Errorf("%w: sealed data is %d bytes, need at least %d", ErrDataError, len(sealed), minSize)
	}

	salt := sealed[:SaltSize]
	params := EncryptionParams{
		Memory:      binary.LittleEndian.Uint32(sealed[SaltSize:]),
		Iterations:  binary.LittleEndian.Uint32(sealed[SaltSize+4:]),
		Parallelism: sealed[SaltSize+8],
	}
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataError, err)
	}

	aead, err := newCipher(password, salt, params)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	nonce := sealed[headerSize : headerSize+nonceSize]
	plaintext, err := aead.Open(nil, nonce, sealed[headerSize+nonceSize:], sealed[:headerSize])
	if err != nil {
		return nil, ErrWrongPassword
	}
	return plaintext, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
