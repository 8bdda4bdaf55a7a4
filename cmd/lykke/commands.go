package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kelsos/lykke-cli/internal/models"
	"github.com/kelsos/lykke-cli/internal/services"
	"github.com/kelsos/lykke-cli/internal/tui"
)

// run builds the exchange service and prints what work renders
func run(cmd *cobra.Command, opts *options, message string, work func(ctx context.Context, exchange *services.ExchangeService) (string, error)) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	exchange := services.NewExchangeService(cfg)
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var output string
	if opts.plain {
		output, err = work(ctx, exchange)
	} else {
		output, err = tui.RunWithSpinner(message, cancel, func() (string, error) {
			return work(ctx, exchange)
		})
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

func newPingCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the Lykke trading API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, "Contacting Lykke...", func(ctx context.Context, exchange *services.ExchangeService) (string, error) {
				if err := exchange.Ping(ctx); err != nil {
					return "", err
				}
				return fmt.Sprintf("%s is reachable", exchange.GetConfig().ExchangeName), nil
			})
		},
	}
}

func newRateCommand(opts *options) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Show the current sell and buy rate of a currency pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fillParams(opts, "Exchange rate", currencyFields(&from, &to)...); err != nil {
				return err
			}

			return run(cmd, opts, "Fetching rate...", func(ctx context.Context, exchange *services.ExchangeService) (string, error) {
				rate, err := exchange.GetExchangeRate(ctx, from, to)
				if err != nil {
					return "", err
				}
				return tui.RenderExchangeRate(rate), nil
			})
		},
	}

	addCurrencyFlags(cmd, &from, &to)
	return cmd
}

func newHistoryCommand(opts *options) *cobra.Command {
	var (
		from, to    string
		skip, count int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent public trades of a currency pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fillParams(opts, "Trading history", currencyFields(&from, &to)...); err != nil {
				return err
			}

			return run(cmd, opts, "Fetching trades...", func(ctx context.Context, exchange *services.ExchangeService) (string, error) {
				records, err := exchange.GetTradingHistory(ctx, from, to, skip, count)
				if err != nil {
					return "", err
				}
				return tui.RenderTradeRecords(from, to, records), nil
			})
		},
	}

	addCurrencyFlags(cmd, &from, &to)
	cmd.Flags().IntVarP(&skip, "skip", "", 0, "Number of trades to skip")
	cmd.Flags().IntVarP(&count, "count", "n", 100, "Maximum number of trades to return (0 lets the exchange decide)")
	return cmd
}

func newWalletTradesCommand(opts *options) *cobra.Command {
	var (
		from, to   string
		skip, take int
	)

	cmd := &cobra.Command{
		Use:   "wallet-trades",
		Short: "Show the wallet's own trades on a currency pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fillParams(opts, "Wallet trades", currencyFields(&from, &to)...); err != nil {
				return err
			}
			key, err := apiKey(opts)
			if err != nil {
				return err
			}

			return run(cmd, opts, "Fetching wallet trades...", func(ctx context.Context, exchange *services.ExchangeService) (string, error) {
				trades, err := exchange.GetWalletTradeInformation(ctx, key, from, to, skip, take)
				if err != nil {
					return "", err
				}
				return tui.RenderWalletTrades(trades), nil
			})
		},
	}

	addCurrencyFlags(cmd, &from, &to)
	cmd.Flags().IntVarP(&skip, "skip", "", 0, "Number of trades to skip")
	cmd.Flags().IntVarP(&take, "count", "n", 100, "Maximum number of trades to return")
	return cmd
}

func newBalancesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show every balance in the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := apiKey(opts)
			if err != nil {
				return err
			}

			return run(cmd, opts, "Fetching balances...", func(ctx context.Context, exchange *services.ExchangeService) (string, error) {
				balances, err := exchange.GetBalances(ctx, key)
				if err != nil {
					return "", err
				}
				return tui.RenderBalances(balances), nil
			})
		},
	}
}

func newBalanceCommand(opts *options) *cobra.Command {
	var asset string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the wallet balance of one asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := fillParams(opts, "Wallet balance", param{value: &asset, field: tui.Field{
				Key: "asset", Label: "Asset", Placeholder: "BTC", Validate: required("asset"),
			}})
			if err != nil {
				return err
			}
			key, err := apiKey(opts)
			if err != nil {
				return err
			}

			return run(cmd, opts, "Fetching balance...", func(ctx context.Context, exchange *services.ExchangeService) (string, error) {
				balance, found, err := exchange.GetBalance(ctx, key, asset)
				if err != nil {
					return "", err
				}
				return tui.RenderBalance(strings.ToUpper(asset), balance, found), nil
			})
		},
	}

	cmd.Flags().StringVarP(&asset, "asset", "a", "", "Asset id, e.g. BTC")
	return cmd
}

func newOrderCommand(opts *options) *cobra.Command {
	var (
		from, to  string
		direction string
		volume    string
		execute   bool
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place a market order and report how much of the to currency it settled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := append(currencyFields(&from, &to),
				param{value: &direction, field: tui.Field{
					Key: "direction", Label: "Direction (BUY or SELL)", Placeholder: "SELL", Validate: validDirection,
				}},
				param{value: &volume, field: tui.Field{
					Key: "volume", Label: "Volume", Placeholder: "0.01", Validate: positiveDecimal,
				}},
			)
			if err := fillParams(opts, "Market order", params...); err != nil {
				return err
			}

			side, err := models.ParseDirection(direction)
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(volume)
			if err != nil {
				return fmt.Errorf("invalid volume %q: %w", volume, err)
			}

			key, err := apiKey(opts)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("execute") {
				opts.executeOverride = &execute
			}

			return run(cmd, opts, "Placing market order...", func(ctx context.Context, exchange *services.ExchangeService) (string, error) {
				received, err := exchange.MarketOrder(ctx, key, from, to, side, amount)
				if err != nil {
					return "", err
				}
				return tui.RenderOrderResult(side, from, amount, received), nil
			})
		},
	}

	addCurrencyFlags(cmd, &from, &to)
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "BUY or SELL")
	cmd.Flags().StringVarP(&volume, "volume", "v", "", "Order volume in the from currency")
	cmd.Flags().BoolVarP(&execute, "execute", "", false, "Ask the exchange to execute the order (overrides execute_orders)")
	return cmd
}

func addCurrencyFlags(cmd *cobra.Command, from, to *string) {
	cmd.Flags().StringVarP(from, "from", "f", "", "From currency, e.g. BTC")
	cmd.Flags().StringVarP(to, "to", "t", "", "To currency, e.g. ETH")
}
