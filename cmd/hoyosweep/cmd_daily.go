package main

import (
	"github.com/spf13/cobra"
)

// dailyCmd claims the daily login reward for every account
var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Claim the daily login reward for every account",
	Long: `Claims the HoYoLAB daily check-in reward for every account in every
enabled game. Accounts within a game are processed in parallel up to the
concurrency cap; each account ends in exactly one reported outcome.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRunner()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()
		return r.Daily(ctx)
	},
}
