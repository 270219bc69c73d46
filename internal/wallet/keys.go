package wallet

import (
	"fmt"

	"github.com/ardikars/farm/pkg/crypto"
	"github.com/ardikars/farm/pkg/types"
)

// KeyGenerator maps a 64-byte seed to a root key-pair.
type KeyGenerator interface {
	KeyGen(seed []byte) (*HDKey, error)
}

// ChildDeriver maps a root key and an address index to a wallet key.
type ChildDeriver interface {
	DeriveWalletKey(root *HDKey, index uint32) (*HDKey, error)
}

// AddressEncoder maps a public key to a human-readable address.
type AddressEncoder interface {
	EncodeAddress(pubKey []byte) (string, error)
}

// BIP32KeyGen generates root keys with BIP-32 master key derivation.
type BIP32KeyGen struct{}

// KeyGen implements KeyGenerator.
func (BIP32KeyGen) KeyGen(seed []byte) (*HDKey, error) {
	return NewMasterKey(seed)
}

// BIP44Deriver derives wallet keys at m/44'/CoinType'/Account'/0/index.
type BIP44Deriver struct {
	CoinType uint32
	Account  uint32
}

// DeriveWalletKey implements ChildDeriver.
func (d BIP44Deriver) DeriveWalletKey(root *HDKey, index uint32) (*HDKey, error) {
	return root.DeriveAddress(d.CoinType, d.Account, ChangeExternal, index)
}

// Bech32mEncoder encodes BLAKE3(pubkey) as a bech32m address under HRP.
type Bech32mEncoder struct {
	HRP string
}

// EncodeAddress implements AddressEncoder.
func (e Bech32mEncoder) EncodeAddress(pubKey []byte) (string, error) {
	return types.EncodeAddress(e.HRP, crypto.AddressFromPubKey(pubKey))
}

// WalletAddress is one derived wallet address.
type WalletAddress struct {
	Index     uint32
	PublicKey []byte
	Address   string
}

// Deriver turns chain seeds into root keys and wallet addresses.
type Deriver struct {
	KeyGen  KeyGenerator
	Child   ChildDeriver
	Encoder AddressEncoder
}

// NewDeriver returns a Deriver using BIP-32 keys, BIP-44 paths under
// coinType and bech32m addresses under hrp.
func NewDeriver(coinType uint32, hrp string) *Deriver {
	return &Deriver{
		KeyGen:  BIP32KeyGen{},
		Child:   BIP44Deriver{CoinType: coinType},
		Encoder: Bech32mEncoder{HRP: hrp},
	}
}

// RootKey generates the root key for a seed.
func (d *Deriver) RootKey(seed []byte) (*HDKey, error) {
	return d.KeyGen.KeyGen(seed)
}

// Addresses derives count consecutive wallet addresses starting at from.
func (d *Deriver) Addresses(root *HDKey, from uint32, count int) ([]WalletAddress, error) {
	if count < 0 {
		return nil, fmt.Errorf("address count must not be negative, got %d", count)
	}
	if uint64(from)+uint64(count) > 1<<31 {
		return nil, fmt.Errorf("%w: address index %d+%d leaves the non-hardened range", ErrIndexOutOfBounds, from, count)
	}

	out := make([]WalletAddress, 0, count)
	for i := 0; i < count; i++ {
		idx := from + uint32(i)
		child, err := d.Child.DeriveWalletKey(root, idx)
		if err != nil {
			return nil, fmt.Errorf("derive wallet key %d: %w", idx, err)
		}
		pub := child.PublicKeyBytes()
		addr, err := d.Encoder.EncodeAddress(pub)
		if err != nil {
			return nil, fmt.Errorf("encode address %d: %w", idx, err)
		}
		out = append(out, WalletAddress{Index: idx, PublicKey: pub, Address: addr})
	}
	return out, nil
}
