package main

import (
	"fmt"

	"github.com/ardikars/farm/config"
	"github.com/ardikars/farm/internal/log"
	"github.com/ardikars/farm/internal/wallet"
	"github.com/spf13/cobra"
)

// app carries state shared by all commands of one invocation.
type app struct {
	flags config.Flags
	cfg   *config.Config
	codec *wallet.Codec
}

func newRootCmd() *cobra.Command {
	a := &app{codec: wallet.NewEnglishCodec()}

	root := &cobra.Command{
		Use:   "farm",
		Short: "Index-chained mnemonic key tool",
		Long: `farm keeps one master key file and derives from it an ordered chain of
independent keys. Key N is reachable only by walking the chain from key 0
with the same passphrase, so one backup plus one passphrase regenerates
every key.

A wrong passphrase is not detected: it silently yields a different chain.
Record the passphrase SHA-256 printed by "generate" and pass it to "show"
with --passphrase-sha256 to check it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.flags.Resolve(cmd.Flags())
			cfg, err := config.Load(&a.flags)
			if err != nil {
				return err
			}
			if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			a.cfg = cfg
			log.CLI.Debug().
				Str("network", string(cfg.Network)).
				Str("datadir", cfg.DataDir).
				Uint32("max_index", cfg.Chain.MaxIndex).
				Msg("configuration loaded")
			return nil
		},
	}

	a.flags.Register(root.PersistentFlags())

	root.AddCommand(
		a.newGenerateCmd(),
		a.newShowCmd(),
		a.newMnemonicCmd(),
		a.newSeedCmd(),
	)
	return root
}

func (a *app) newWalker() *wallet.Walker {
	return wallet.NewWalker(a.codec, wallet.WithMaxIndex(a.cfg.Chain.MaxIndex))
}

func (a *app) newDeriver() *wallet.Deriver {
	return wallet.NewDeriver(a.cfg.Wallet.CoinType, a.cfg.HRP())
}
