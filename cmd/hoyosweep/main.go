package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hoyosweep/internal/config"
	"hoyosweep/internal/runner"
)

var (
	// Global flags
	verbose  bool
	envFile  string
	parallel int

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hoyosweep",
	Short: "Batch daily check-in and code redemption for HoYoverse accounts",
	Long: `hoyosweep runs HoYoLAB housekeeping across a whole fleet of accounts:
claims the daily login reward and redeems promo codes for Genshin Impact,
Honkai: Star Rail and Zenless Zone Zero.

Accounts come from a cookie store API; results go to the console and,
optionally, to Discord webhooks. Configuration is read from the environment
(or a .env file).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logger.With(zap.String("run_id", uuid.NewString()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

// loadRunner reads configuration and wires the real collaborators.
func loadRunner() (*runner.Runner, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if parallel > 0 {
		cfg.MaxParallel = parallel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return runner.New(cfg, logger), nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()
	return ctx, cancel
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to the .env file (default ./.env if present)")
	rootCmd.PersistentFlags().IntVar(&parallel, "parallel", 0, "override the account concurrency cap")

	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(redeemCmd)
	rootCmd.AddCommand(resetUsedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
