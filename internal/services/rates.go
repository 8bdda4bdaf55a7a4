package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kelsos/lykke-cli/internal/client"
	"github.com/kelsos/lykke-cli/internal/config"
	"github.com/kelsos/lykke-cli/internal/logger"
	"github.com/kelsos/lykke-cli/internal/models"
	"github.com/kelsos/lykke-cli/internal/pair"
	"github.com/kelsos/lykke-cli/internal/utils"
)

// RateService resolves bid/ask quotes for currency pairs
type RateService struct {
	config *config.Config
	client *client.APIClient
	now    func() time.Time
}

// NewRateService creates a new rate service
func NewRateService(cfg *config.Config, apiClient *client.APIClient) *RateService {
	return &RateService{
		config: cfg,
		client: apiClient,
		now:    time.Now,
	}
}

// lookupQuote fetches the quote for one symbol. A 404 or an empty body is
// reported as not found, not as an error.
func (s *RateService) lookupQuote(ctx context.Context, symbol string) (models.RateQuote, bool, error) {
	body, err := s.client.Get(ctx, s.client.PublicURL("/AssetPairs/rate/"+symbol, nil), nil)
	if client.IsNotFound(err) {
		return models.RateQuote{}, false, nil
	}
	if err != nil {
		return models.RateQuote{}, false, fmt.Errorf("failed to fetch rate for %s: %w", symbol, err)
	}

	quote, err := utils.DecodeJSON[models.RateQuote](body, s.config.StrictDecoding)
	if err != nil {
		return models.RateQuote{}, false, fmt.Errorf("failed to decode rate for %s: %w", symbol, err)
	}
	if quote == nil {
		return models.RateQuote{}, false, nil
	}

	return *quote, true, nil
}

// resolve finds the quote for p, falling back to the inverse symbol
func (s *RateService) resolve(ctx context.Context, p pair.Pair) (models.RateQuote, pair.Resolution, error) {
	quote, resolution, err := pair.Resolve(p, func(symbol string) (models.RateQuote, bool, error) {
		return s.lookupQuote(ctx, symbol)
	})
	if err != nil && !errors.Is(err, pair.ErrNotFound) {
		return models.RateQuote{}, pair.Resolution{}, fmt.Errorf("rate lookup for %s: %w", p, err)
	}
	if err != nil {
		logger.Debug("No rate for %s at %s: %v", p, s.config.ExchangeName, err)
		return models.RateQuote{}, pair.Resolution{}, &PairNotSupportedError{
			Exchange:     s.config.ExchangeName,
			FromCurrency: p.From,
			ToCurrency:   p.To,
			Err:          err,
		}
	}
	return quote, resolution, nil
}

// GetExchangeRate returns the current sell/buy price of from in to
func (s *RateService) GetExchangeRate(ctx context.Context, from, to string) (models.ExchangeRate, error) {
	p, err := pair.New(from, to)
	if err != nil {
		return models.ExchangeRate{}, err
	}

	quote, resolution, err := s.resolve(ctx, p)
	if err != nil {
		return models.ExchangeRate{}, err
	}

	rate := models.ExchangeRate{
		FromCurrency: p.From,
		ToCurrency:   p.To,
		Sell:         quote.Ask,
		Buy:          quote.Bid,
		ObservedAt:   s.now(),
	}

	// The inverse pair quotes the counter side, so bid and ask trade places.
	if resolution.Reversed {
		rate.Sell = quote.Bid
		rate.Buy = quote.Ask
	}

	logger.Debug("Rate for %s via %s (reversed: %t): sell %s buy %s",
		p, resolution.Symbol, resolution.Reversed, rate.Sell, rate.Buy)

	return rate, nil
}
