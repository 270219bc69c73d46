// chain_vectors.go prints chain link vectors over the synthetic "w0000".."w2047"
// dictionary for the master seed 0x00..0x3f.
// Usage: go run scripts/chain_vectors.go <index> [passphrase]
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/ardikars/farm/internal/wallet"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: chain_vectors <index> [passphrase]")
		os.Exit(1)
	}
	index, err := strconv.ParseUint(os.Args[1], 10, 32)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	passphrase := ""
	if len(os.Args) > 2 {
		passphrase = os.Args[2]
	}

	words := make([]string, wallet.WordListSize)
	for i := range words {
		words[i] = fmt.Sprintf("w%04d", i)
	}
	wl, err := wallet.NewWordList(words)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	masterSeed := make([]byte, wallet.SeedSize)
	for i := range masterSeed {
		masterSeed[i] = byte(i)
	}

	key, err := wallet.NewWalker(wallet.NewCodec(wl)).Walk(masterSeed, uint32(index), passphrase)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("entropy=%s\n", hex.EncodeToString(key.Entropy))
	fmt.Printf("mnemonic=%s\n", key.Phrase())
	fmt.Printf("seed=%s\n", hex.EncodeToString(key.Seed))
}
