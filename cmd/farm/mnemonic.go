package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ardikars/farm/internal/wallet"
	"github.com/spf13/cobra"
)

func (a *app) newMnemonicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Convert between entropy and mnemonic phrases",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "encode <hex>",
		Short: "Encode 16-32 bytes of hex entropy as a mnemonic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entropy, err := hex.DecodeString(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("entropy is not hex: %w", err)
			}
			phrase, err := a.codec.EncodeString(entropy)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), phrase)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "decode <words...>",
		Short: "Decode a mnemonic to hex entropy",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entropy, err := a.codec.DecodeString(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(entropy))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check <words...>",
		Short: "Check a mnemonic's words and checksum",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase := strings.Join(args, " ")
			if err := a.codec.Validate(phrase); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mnemonic is valid (%d words)\n", len(strings.Fields(phrase)))
			return nil
		},
	})

	return cmd
}

func (a *app) newSeedCmd() *cobra.Command {
	var passphrase string

	cmd := &cobra.Command{
		Use:   "seed <words...>",
		Short: "Derive the 64-byte seed of a mnemonic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase := strings.Join(strings.Fields(strings.Join(args, " ")), " ")
			if err := a.codec.Validate(phrase); err != nil {
				return err
			}
			pass, err := readPassphrase(cmd, newPromptReader(cmd), passphrase, false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(wallet.SeedFromMnemonic(phrase, pass)))
			return nil
		},
	}

	passphraseFlag(cmd, &passphrase)
	return cmd
}
