package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kelsos/lykke-cli/internal/client"
	"github.com/kelsos/lykke-cli/internal/config"
	"github.com/kelsos/lykke-cli/internal/logger"
	"github.com/kelsos/lykke-cli/internal/models"
	"github.com/kelsos/lykke-cli/internal/pair"
	"github.com/kelsos/lykke-cli/internal/utils"
)

// HistoryService handles public and wallet trading history
type HistoryService struct {
	config *config.Config
	client *client.APIClient
}

// NewHistoryService creates a new history service
func NewHistoryService(cfg *config.Config, apiClient *client.APIClient) *HistoryService {
	return &HistoryService{
		config: cfg,
		client: apiClient,
	}
}

func pageParams(skip, count int) map[string]string {
	params := map[string]string{"skip": strconv.Itoa(skip)}
	if count > 0 {
		params["take"] = strconv.Itoa(count)
	}
	return params
}

func validatePage(skip, count int) error {
	if skip < 0 {
		return fmt.Errorf("skip must be non-negative, got: %d", skip)
	}
	if count < 0 {
		return fmt.Errorf("count must be non-negative, got: %d", count)
	}
	return nil
}

// fetchPage fetches one page of public trades. An empty JSON array is a page
// with no trades; a missing body or a 404 means there is no page at all.
func (s *HistoryService) fetchPage(ctx context.Context, symbol string, skip, count int) ([]models.Trade, bool, error) {
	body, err := s.client.Get(ctx, s.client.PublicURL("/Trades/"+symbol, pageParams(skip, count)), nil)
	if client.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch trades for %s: %w", symbol, err)
	}

	trades, err := utils.DecodeJSON[[]models.Trade](body, s.config.StrictDecoding)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode trades for %s: %w", symbol, err)
	}
	if trades == nil {
		return nil, false, nil
	}

	return *trades, true, nil
}

// GetTradingHistory returns the most recent public trades between from and to.
// count == 0 leaves the page size to the exchange.
func (s *HistoryService) GetTradingHistory(ctx context.Context, from, to string, skip, count int) ([]models.TradeRecord, error) {
	p, err := pair.New(from, to)
	if err != nil {
		return nil, err
	}
	if err := validatePage(skip, count); err != nil {
		return nil, err
	}

	trades, resolution, err := pair.Resolve(p, func(symbol string) ([]models.Trade, bool, error) {
		return s.fetchPage(ctx, symbol, skip, count)
	})
	if err != nil && !errors.Is(err, pair.ErrNotFound) {
		return nil, fmt.Errorf("trade history for %s: %w", p, err)
	}
	if err != nil {
		return nil, &PairNotSupportedError{
			Exchange:     s.config.ExchangeName,
			FromCurrency: p.From,
			ToCurrency:   p.To,
			Err:          err,
		}
	}

	if count > 0 && len(trades) > count {
		trades = trades[:count]
	}

	records := make([]models.TradeRecord, 0, len(trades))
	for _, trade := range trades {
		// TODO: use the actual fee asset once the public trades endpoint exposes it
		records = append(records, models.TradeRecord{
			FromCurrency: p.From,
			ToCurrency:   p.To,
			Amount:       trade.Volume,
			Price:        trade.Price,
			Direction:    models.DirectionFromAction(trade.Action),
			Timestamp:    trade.DateTime.Time,
			GasCurrency:  p.From,
		})
	}

	logger.Debug("Fetched %d trades for %s via %s (reversed: %t)",
		len(records), p, resolution.Symbol, resolution.Reversed)

	return records, nil
}

// GetWalletTradeInformation returns the trades of the authenticated wallet on the pair
func (s *HistoryService) GetWalletTradeInformation(ctx context.Context, apiKey, from, to string, skip, take int) ([]models.WalletTrade, error) {
	p, err := pair.New(from, to)
	if err != nil {
		return nil, err
	}
	if err := validatePage(skip, take); err != nil {
		return nil, err
	}

	params := pageParams(skip, take)
	params["assetPairId"] = p.Symbol()

	body, err := s.client.Get(ctx, s.client.HFTURL("/History/trades", params), client.AuthHeaders(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wallet trades for %s: %w", p, err)
	}

	trades, err := utils.DecodeJSON[[]models.WalletTrade](body, s.config.StrictDecoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wallet trades for %s: %w", p, err)
	}
	if trades == nil {
		return []models.WalletTrade{}, nil
	}

	logger.Debug("Fetched %d wallet trades for %s", len(*trades), p)
	return *trades, nil
}
