package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kelsos/lykke-cli/internal/client"
	"github.com/kelsos/lykke-cli/internal/config"
	"github.com/kelsos/lykke-cli/internal/logger"
	"github.com/kelsos/lykke-cli/internal/models"
	"github.com/kelsos/lykke-cli/internal/money"
	"github.com/kelsos/lykke-cli/internal/utils"
)

// WalletService reads balances of the authenticated wallet
type WalletService struct {
	config *config.Config
	client *client.APIClient
}

// NewWalletService creates a new wallet service
func NewWalletService(cfg *config.Config, apiClient *client.APIClient) *WalletService {
	return &WalletService{
		config: cfg,
		client: apiClient,
	}
}

// GetBalances retrieves every asset balance in the wallet
func (s *WalletService) GetBalances(ctx context.Context, apiKey string) ([]models.WalletBalance, error) {
	body, err := s.client.Get(ctx, s.client.HFTURL("/Wallets", nil), client.AuthHeaders(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}

	balances, err := utils.DecodeJSON[[]models.WalletBalance](body, s.config.StrictDecoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decode balances: %w", err)
	}
	if balances == nil {
		return []models.WalletBalance{}, nil
	}

	logger.Debug("Found %d wallet balances", len(*balances))
	return *balances, nil
}

// GetBalance returns the balance of a single asset, matched case-insensitively
func (s *WalletService) GetBalance(ctx context.Context, apiKey, assetID string) (models.WalletBalance, bool, error) {
	balances, err := s.GetBalances(ctx, apiKey)
	if err != nil {
		return models.WalletBalance{}, false, err
	}

	for _, balance := range balances {
		if strings.EqualFold(balance.AssetID, assetID) {
			return balance, true, nil
		}
	}

	return models.WalletBalance{}, false, nil
}

// balanceOf returns the balance of currency as Money. An asset the wallet
// has never held counts as zero.
func (s *WalletService) balanceOf(ctx context.Context, apiKey, currency string) (money.Money, error) {
	balance, found, err := s.GetBalance(ctx, apiKey, currency)
	if err != nil {
		return money.Money{}, err
	}
	if !found {
		return money.Zero(currency), nil
	}
	return money.New(balance.Balance, currency), nil
}
