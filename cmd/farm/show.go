package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ardikars/farm/internal/log"
	"github.com/ardikars/farm/internal/wallet"
	"github.com/ardikars/farm/pkg/types"
	"github.com/spf13/cobra"
)

var errInvalidPassphrase = errors.New("passphrase does not match --passphrase-sha256")

func (a *app) newShowCmd() *cobra.Command {
	var (
		index      uint32
		count      int
		derive     uint32
		length     int
		digest     string
		passphrase string
	)

	cmd := &cobra.Command{
		Use:   "show [keyfile]",
		Short: "Show the chain key at an index and its wallet addresses",
		Long: `Read a master key file, walk the key chain to --index and print the key's
mnemonic, keys and wallet addresses.

Walking to index N derives N+1 seeds, so large indices take time. Use
--count to print several consecutive keys in a single pass.`,
		Example: `  farm show --index 3 --length 5
  farm show master.key --index 0 --count 10 --passphrase-sha256 <hex>`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			in := newPromptReader(cmd)

			if count < 1 {
				return fmt.Errorf("--count must be positive")
			}
			if !cmd.Flags().Changed("length") {
				length = a.cfg.Wallet.Length
			}
			if length < 0 {
				return fmt.Errorf("--length must not be negative")
			}

			path := a.cfg.KeyFilePath()
			if len(args) == 1 {
				path = args[0]
			}

			pass, err := readPassphrase(cmd, in, passphrase, false)
			if err != nil {
				return err
			}
			sum := wallet.PassphraseDigest(pass)
			if digest != "" {
				want, err := types.HexToHash(strings.ToLower(strings.TrimSpace(digest)))
				if err != nil {
					return fmt.Errorf("--passphrase-sha256: %w", err)
				}
				if want != sum {
					fmt.Fprintln(out, "Invalid passphrase.")
					return errInvalidPassphrase
				}
			}

			entropy, err := a.readKeyFile(path, in)
			if err != nil {
				return err
			}
			masterSeed, err := wallet.MasterSeed(a.codec, entropy, pass)
			if err != nil {
				return err
			}

			deriver := a.newDeriver()
			fmt.Fprintf(out, "Passphrase      : %x -> sha256(%s)\n", wallet.NormalizePassphrase(pass), sum)

			return a.newWalker().WalkRange(masterSeed, index, count, pass, func(k *wallet.ChainKey) error {
				return printChainKey(out, deriver, k, derive, length)
			})
		},
	}

	cmd.Flags().Uint32Var(&index, "index", 0, "Chain index of the key")
	cmd.Flags().IntVar(&count, "count", 1, "Number of consecutive chain keys to show")
	cmd.Flags().Uint32Var(&derive, "derive", 0, "First wallet address index")
	cmd.Flags().IntVar(&length, "length", 0, "Number of wallet addresses per key (default: wallet.length)")
	cmd.Flags().StringVar(&digest, "passphrase-sha256", "", "Expected SHA-256 of the normalized passphrase")
	passphraseFlag(cmd, &passphrase)
	return cmd
}

// readKeyFile loads master entropy, prompting for a password when the key
// file is encrypted.
func (a *app) readKeyFile(path string, in *promptReader) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	var password []byte
	if wallet.IsEncryptedKeyFile(data) {
		if password, err = readPassword(in, false); err != nil {
			return nil, err
		}
	}
	entropy, err := wallet.ReadKeyFile(path, password)
	if err != nil {
		return nil, err
	}
	log.CLI.Debug().Str("path", path).Bool("encrypted", password != nil).Msg("key file loaded")
	return entropy, nil
}

func printChainKey(out io.Writer, deriver *wallet.Deriver, k *wallet.ChainKey, derive uint32, length int) error {
	root, err := deriver.RootKey(k.Seed)
	if err != nil {
		return fmt.Errorf("key %d: %w", k.Index, err)
	}
	priv, err := root.PrivateKey()
	if err != nil {
		return fmt.Errorf("key %d: %w", k.Index, err)
	}
	defer priv.Zero()

	addrs, err := deriver.Addresses(root, derive, length)
	if err != nil {
		return fmt.Errorf("key %d: %w", k.Index, err)
	}

	fmt.Fprintf(out, "Index           : %d\n", k.Index)
	fmt.Fprintf(out, "Mnemonic        : %s\n", k.Phrase())
	fmt.Fprintf(out, "Private key     : %s\n", hex.EncodeToString(priv.Serialize()))
	fmt.Fprintf(out, "Public key      : %s\n", hex.EncodeToString(priv.PublicKey()))
	fmt.Fprintf(out, "Fingerprint     : %d\n", root.Fingerprint())
	fmt.Fprintf(out, "Addresses       :\n")
	for _, addr := range addrs {
		fmt.Fprintf(out, "[%d/%d]: %s\n", k.Index, addr.Index, addr.Address)
	}
	return nil
}
