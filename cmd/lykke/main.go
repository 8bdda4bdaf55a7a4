package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kelsos/lykke-cli/internal/logger"
	"github.com/kelsos/lykke-cli/internal/utils"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	logger.Init()
	utils.LoadEnvironment()
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logger.Error("Command failed: %v", err)
		stop()
		logger.Close()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "lykke",
		Short:         "A CLI client for the Lykke exchange",
		Long:          `lykke queries rates, trades and balances on the Lykke exchange and places market orders.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logDir != "" {
				return logger.InitFileOnly(opts.logDir)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML configuration file")
	flags.StringVarP(&opts.logDir, "log-dir", "", "", "Write logs to a file in this directory instead of stderr")
	flags.BoolVarP(&opts.plain, "plain", "", false, "Never prompt or animate; fail when a value is missing")

	// Add subcommands
	rootCmd.AddCommand(newPingCommand(opts))
	rootCmd.AddCommand(newRateCommand(opts))
	rootCmd.AddCommand(newHistoryCommand(opts))
	rootCmd.AddCommand(newWalletTradesCommand(opts))
	rootCmd.AddCommand(newBalancesCommand(opts))
	rootCmd.AddCommand(newBalanceCommand(opts))
	rootCmd.AddCommand(newOrderCommand(opts))

	return rootCmd
}
