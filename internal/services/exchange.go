package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kelsos/lykke-cli/internal/client"
	"github.com/kelsos/lykke-cli/internal/config"
	"github.com/kelsos/lykke-cli/internal/models"
	"github.com/kelsos/lykke-cli/internal/money"
)

// ExchangeService is the entry point to every exchange operation. It only
// holds configuration fixed at construction, so one instance can be shared
// between goroutines.
type ExchangeService struct {
	config  *config.Config
	client  *client.APIClient
	rates   *RateService
	history *HistoryService
	wallet  *WalletService
	orders  *OrderService
}

// NewExchangeService creates a new exchange service with all dependencies
func NewExchangeService(cfg *config.Config) *ExchangeService {
	return NewExchangeServiceWithClient(cfg, client.NewAPIClient(cfg))
}

// NewExchangeServiceWithClient creates a new exchange service on an existing API client
func NewExchangeServiceWithClient(cfg *config.Config, apiClient *client.APIClient) *ExchangeService {
	rates := NewRateService(cfg, apiClient)
	wallet := NewWalletService(cfg, apiClient)

	return &ExchangeService{
		config:  cfg,
		client:  apiClient,
		rates:   rates,
		history: NewHistoryService(cfg, apiClient),
		wallet:  wallet,
		orders:  NewOrderService(cfg, apiClient, rates, wallet),
	}
}

// GetConfig returns the current configuration
func (s *ExchangeService) GetConfig() *config.Config {
	return s.config
}

// Ping checks that the trading API is reachable
func (s *ExchangeService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// GetExchangeRate returns the current sell/buy price of from in to
func (s *ExchangeService) GetExchangeRate(ctx context.Context, from, to string) (models.ExchangeRate, error) {
	return s.rates.GetExchangeRate(ctx, from, to)
}

// GetTradingHistory returns recent public trades between from and to
func (s *ExchangeService) GetTradingHistory(ctx context.Context, from, to string, skip, count int) ([]models.TradeRecord, error) {
	return s.history.GetTradingHistory(ctx, from, to, skip, count)
}

// GetWalletTradeInformation returns the wallet's own trades on the pair
func (s *ExchangeService) GetWalletTradeInformation(ctx context.Context, apiKey, from, to string, skip, take int) ([]models.WalletTrade, error) {
	return s.history.GetWalletTradeInformation(ctx, apiKey, from, to, skip, take)
}

// GetBalances returns every asset balance in the wallet
func (s *ExchangeService) GetBalances(ctx context.Context, apiKey string) ([]models.WalletBalance, error) {
	return s.wallet.GetBalances(ctx, apiKey)
}

// GetBalance returns the balance of one asset
func (s *ExchangeService) GetBalance(ctx context.Context, apiKey, assetID string) (models.WalletBalance, bool, error) {
	return s.wallet.GetBalance(ctx, apiKey, assetID)
}

// MarketOrder submits a market order and returns the settled amount of to
func (s *ExchangeService) MarketOrder(ctx context.Context, apiKey, from, to string, direction models.Direction, volume decimal.Decimal) (money.Money, error) {
	return s.orders.MarketOrder(ctx, apiKey, from, to, direction, volume)
}
