package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kelsos/lykke-cli/internal/client"
	"github.com/kelsos/lykke-cli/internal/config"
	"github.com/kelsos/lykke-cli/internal/logger"
	"github.com/kelsos/lykke-cli/internal/models"
	"github.com/kelsos/lykke-cli/internal/money"
	"github.com/kelsos/lykke-cli/internal/pair"
	"github.com/kelsos/lykke-cli/internal/utils"
)

var errNoOrderResponse = errors.New("no response to market order")

// OrderService submits market orders and settles them from wallet balances
type OrderService struct {
	config *config.Config
	client *client.APIClient
	rates  *RateService
	wallet *WalletService
}

// NewOrderService creates a new order service
func NewOrderService(cfg *config.Config, apiClient *client.APIClient, rates *RateService, wallet *WalletService) *OrderService {
	return &OrderService{
		config: cfg,
		client: apiClient,
		rates:  rates,
		wallet: wallet,
	}
}

// MarketOrder buys or sells volume of from against to and returns the amount
// of to the wallet gained (negative when it paid).
//
// The traded amount is the difference of the to balance read before and after
// the order. Anything else moving that balance in between, like a deposit or
// another order on the same wallet, ends up in the result.
func (s *OrderService) MarketOrder(ctx context.Context, apiKey, from, to string, direction models.Direction, volume decimal.Decimal) (money.Money, error) {
	p, err := pair.New(from, to)
	if err != nil {
		return money.Money{}, err
	}
	if direction != models.Buy && direction != models.Sell {
		return money.Money{}, fmt.Errorf("invalid direction %q", direction)
	}
	if !volume.IsPositive() {
		return money.Money{}, fmt.Errorf("volume must be positive, got: %s", volume)
	}

	// Only validates that the pair trades; the order always goes to the primary symbol.
	if _, _, err := s.rates.resolve(ctx, p); err != nil {
		return money.Money{}, err
	}

	fail := func(err error) (money.Money, error) {
		logger.Error("Market order %s %s %s failed: %v", direction, volume, p, err)
		return money.Money{}, &OrderFailedError{
			Exchange:     s.config.ExchangeName,
			FromCurrency: p.From,
			ToCurrency:   p.To,
			Err:          err,
		}
	}

	before, err := s.wallet.balanceOf(ctx, apiKey, p.To)
	if err != nil {
		return fail(fmt.Errorf("reading balance before order: %w", err))
	}

	if err := s.submit(ctx, apiKey, p, direction, volume); err != nil {
		return fail(err)
	}

	after, err := s.wallet.balanceOf(ctx, apiKey, p.To)
	if err != nil {
		return fail(fmt.Errorf("reading balance after order: %w", err))
	}

	realized, err := after.Sub(before)
	if err != nil {
		return fail(err)
	}

	logger.Info("Market order %s %s %s settled: %s", direction, volume, p, realized)
	return realized, nil
}

func (s *OrderService) submit(ctx context.Context, apiKey string, p pair.Pair, direction models.Direction, volume decimal.Decimal) error {
	request := models.NewMarketOrderRequest(p.Symbol(), strings.ToUpper(p.From), direction, volume, s.config.ExecuteOrders)

	logger.Info("Submitting market order: %s %s %s on %s (execute: %t)",
		request.OrderAction, volume, request.Asset, request.AssetPairID, request.ExecuteOrders)

	body, err := s.client.Post(ctx, s.client.HFTURL("/Orders/market", nil), request, client.AuthHeaders(apiKey))
	if err != nil {
		return fmt.Errorf("submitting order: %w", err)
	}

	result, err := utils.DecodeJSON[models.MarketOrderResult](body, s.config.StrictDecoding)
	if err != nil {
		return fmt.Errorf("reading order response: %w", err)
	}
	if result == nil {
		return errNoOrderResponse
	}

	if result.Result != nil {
		logger.Debug("Exchange reported order result %s for %s", result.Result, request.AssetPairID)
	}
	return nil
}
