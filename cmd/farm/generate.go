package main

import (
	"fmt"
	"path/filepath"

	"github.com/ardikars/farm/config"
	"github.com/ardikars/farm/internal/log"
	"github.com/ardikars/farm/internal/wallet"
	"github.com/spf13/cobra"
)

func (a *app) newGenerateCmd() *cobra.Command {
	var (
		output     string
		encrypt    bool
		passphrase string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new master key file",
		Long: `Generate 32 random bytes of master entropy and write them to a key file.

The passphrase is not stored. It is needed again by "show" to walk the key
chain; write down the printed SHA-256 to check it later. An existing key
file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			in := newPromptReader(cmd)

			pass, err := readPassphrase(cmd, in, passphrase, true)
			if err != nil {
				return err
			}

			var opts wallet.KeyFileOptions
			if encrypt {
				password, err := readPassword(in, true)
				if err != nil {
					return err
				}
				opts = wallet.KeyFileOptions{Password: password, Params: wallet.DefaultParams()}
			}

			path := output
			if path == "" {
				if err := config.EnsureDataDirs(a.cfg); err != nil {
					return err
				}
				path = a.cfg.KeyFilePath()
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}

			entropy, err := wallet.GenerateEntropy(wallet.MnemonicEntropyBits)
			if err != nil {
				return err
			}
			masterSeed, err := wallet.MasterSeed(a.codec, entropy, pass)
			if err != nil {
				return err
			}
			master, err := a.newDeriver().RootKey(masterSeed)
			if err != nil {
				return fmt.Errorf("generate master key: %w", err)
			}

			if err := wallet.WriteKeyFile(abs, entropy, opts); err != nil {
				return err
			}
			log.CLI.Info().Str("path", abs).Bool("encrypted", encrypt).Msg("master key written")

			fmt.Fprintf(out, "Passphrase  : %x -> sha256(%s)\n", wallet.NormalizePassphrase(pass), wallet.PassphraseDigest(pass))
			fmt.Fprintf(out, "Master key has been generated (%d): %s\n", master.Fingerprint(), abs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output key file (default: <datadir>/"+config.DefaultKeyFile+")")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "Encrypt the key file with a password")
	passphraseFlag(cmd, &passphrase)
	return cmd
}
