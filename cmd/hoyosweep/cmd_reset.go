package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hoyosweep/internal/config"
	"hoyosweep/internal/game"
	"hoyosweep/internal/ledger"
)

// resetUsedCmd clears the used-codes ledger
var resetUsedCmd = &cobra.Command{
	Use:   "reset-used [game]",
	Short: "Clear the used-codes ledger",
	Long: `Truncates the used-codes ledger so every code becomes redeemable
again. With no argument all games are reset; pass a game key (gi, sr, zz)
to reset a single game.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}

		targets := game.All()
		if len(args) == 1 {
			g, err := game.ParseKey(args[0])
			if err != nil {
				return err
			}
			targets = []game.Game{g}
		}

		led := ledger.New(cfg.UsedDir)
		for _, g := range targets {
			if err := led.Reset(g); err != nil {
				return fmt.Errorf("reset %s: %w", g, err)
			}
			logger.Info("ledger reset", zap.String("game", g.String()))
		}
		return nil
	},
}
