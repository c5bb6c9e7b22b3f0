package main

import (
	"github.com/spf13/cobra"

	"hoyosweep/internal/game"
)

var (
	redeemAuto  bool
	redeemForce bool
	giCodes     []string
	srCodes     []string
	zzCodes     []string
)

// redeemCmd redeems promo codes across all accounts
var redeemCmd = &cobra.Command{
	Use:   "redeem",
	Short: "Redeem promo codes across all accounts",
	Long: `Redeems promo codes for every account. Codes can be given per game
with --gi, --sr and --zz, and --auto pulls the currently active codes from
the public feed. Codes already attempted in an earlier run are skipped
unless --force is set.

Examples:
  hoyosweep redeem --auto
  hoyosweep redeem --gi GENSHINGIFT --gi NEWCODE123
  hoyosweep redeem --force --sr STARRAILGIFT`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRunner()
		if err != nil {
			return err
		}
		requested := map[game.Game][]string{
			game.Genshin:  giCodes,
			game.StarRail: srCodes,
			game.ZZZ:      zzCodes,
		}
		ctx, cancel := signalContext()
		defer cancel()
		return r.Redeem(ctx, requested, redeemAuto, redeemForce)
	},
}

func init() {
	redeemCmd.Flags().BoolVarP(&redeemAuto, "auto", "a", false, "include active codes from the public feed")
	redeemCmd.Flags().BoolVarP(&redeemForce, "force", "f", false, "retry codes already recorded as used")
	redeemCmd.Flags().StringSliceVar(&giCodes, "gi", nil, "Genshin Impact codes")
	redeemCmd.Flags().StringSliceVar(&srCodes, "sr", nil, "Honkai: Star Rail codes")
	redeemCmd.Flags().StringSliceVar(&zzCodes, "zz", nil, "Zenless Zone Zero codes")
}
