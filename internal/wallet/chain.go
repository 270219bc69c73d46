package wallet

import (
	"fmt"
	"strings"

	"github.com/ardikars/farm/internal/log"
	"github.com/ardikars/farm/pkg/crypto"
	"github.com/rs/zerolog"
)

// DefaultMaxIndex bounds chain walks. Walking to index n costs n+1 rounds
// of PBKDF2, so the cap bounds worst-case latency.
const DefaultMaxIndex = 100_000

// ChainKey is one link of the derivation chain.
type ChainKey struct {
	Index    uint32
	Entropy  []byte   // 32 bytes
	Mnemonic []string // 24 words
	Seed     []byte   // derived from Mnemonic with an empty passphrase
}

// Phrase returns the link's mnemonic as a single space-separated string.
func (k *ChainKey) Phrase() string {
	return strings.Join(k.Mnemonic, " ")
}

// Walker derives chain links from a master seed.
//
// The chain is sequential: link i+1 is reachable only through link i.
// Starting from SHA-256(master seed), each link's entropy is encoded as a
// mnemonic, and the next link's entropy is SHA-256 of the seed derived from
// that mnemonic with the caller's passphrase. The seed returned for the
// target link is derived with an empty passphrase instead.
//
// A wrong passphrase is not detectable: it yields a different chain that
// is just as internally consistent.
//
// A Walker holds only immutable state and is safe for concurrent use.
type Walker struct {
	codec    *Codec
	maxIndex uint32
	log      zerolog.Logger
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithMaxIndex sets the highest index a walk may reach.
func WithMaxIndex(n uint32) WalkerOption {
	return func(w *Walker) {
		w.maxIndex = n
	}
}

// WithLogger sets the walker's logger.
func WithLogger(l zerolog.Logger) WalkerOption {
	return func(w *Walker) {
		w.log = l
	}
}

// NewWalker creates a walker over the given codec.
func NewWalker(codec *Codec, opts ...WalkerOption) *Walker {
	w := &Walker{
		codec:    codec,
		maxIndex: DefaultMaxIndex,
		log:      log.Chain,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// MaxIndex returns the highest index a walk may reach.
func (w *Walker) MaxIndex() uint32 {
	return w.maxIndex
}

// Walk derives the chain link at index. It performs exactly index+1 rounds.
func (w *Walker) Walk(masterSeed []byte, index uint32, passphrase string) (*ChainKey, error) {
	var out *ChainKey
	err := w.WalkRange(masterSeed, index, 1, passphrase, func(k *ChainKey) error {
		out = k
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WalkRange derives the links [from, from+count) in a single forward pass and
// passes each to fn in index order. Every link equals what Walk returns for
// the same index. A non-nil error from fn stops the walk and is returned.
func (w *Walker) WalkRange(masterSeed []byte, from uint32, count int, passphrase string, fn func(*ChainKey) error) error {
	if len(masterSeed) != SeedSize {
		return fmt.Errorf("%w: master seed is %d bytes, want %d", ErrInvalidLength, len(masterSeed), SeedSize)
	}
	if count < 1 {
		return fmt.Errorf("%w: count must be positive, got %d", ErrIndexOutOfBounds, count)
	}
	last := uint64(from) + uint64(count) - 1
	if last > uint64(w.maxIndex) {
		return fmt.Errorf("%w: index %d exceeds maximum %d", ErrIndexOutOfBounds, last, w.maxIndex)
	}

	defer log.Benchmark(w.log, "chain walk")()

	cur := crypto.StdHash(masterSeed)
	for i := uint64(0); ; i++ {
		entropy := cur.Bytes()
		words, err := w.codec.EncodeChecked(entropy)
		if err != nil {
			w.log.Error().Uint64("index", i).Err(err).Msg("chain link failed round trip")
			return fmt.Errorf("chain link %d: %w", i, err)
		}
		phrase := strings.Join(words, " ")

		if i >= uint64(from) {
			key := &ChainKey{
				Index:    uint32(i),
				Entropy:  entropy,
				Mnemonic: words,
				Seed:     SeedFromMnemonic(phrase, ""),
			}
			w.log.Debug().Uint32("index", key.Index).Msg("chain link derived")
			if err := fn(key); err != nil {
				return err
			}
		}

		if i == last {
			return nil
		}
		cur = crypto.StdHash(SeedFromMnemonic(phrase, passphrase))
	}
}
