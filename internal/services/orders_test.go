package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelsos/lykke-cli/internal/config"
	"github.com/kelsos/lykke-cli/internal/models"
)

func TestMarketOrder_BalanceDiff(t *testing.T) {
	fake, service := newFakeExchange(t)
	fake.rates["ETHBTC"] = `{"id":"ETHBTC","bid":0.07,"ask":0.08}`
	fake.walletSnapshots = []string{
		`[{"AssetId":"BTC","Balance":2,"Reserved":0},{"AssetId":"ETH","Balance":1.0,"Reserved":0}]`,
		`[{"AssetId":"BTC","Balance":1.5,"Reserved":0},{"AssetId":"ETH","Balance":7.25,"Reserved":0}]`,
	}
	fake.orderBody = `{"Result":0.07}`

	result, err := service.MarketOrder(context.Background(), "key-1", "BTC", "ETH", models.Sell, dec("0.5"))
	require.NoError(t, err)

	assert.Equal(t, "ETH", result.Currency)
	assert.True(t, result.Amount.Equal(dec("6.25")), "got %s", result)

	orders := fake.submittedOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, "ETHBTC", orders[0]["AssetPairId"])
	assert.Equal(t, "BTC", orders[0]["Asset"])
	assert.Equal(t, "Sell", orders[0]["OrderAction"])
	assert.Equal(t, 0.5, orders[0]["Volume"])
	assert.Equal(t, false, orders[0]["executeOrders"])

	assert.Equal(t, []string{
		"GET /public/AssetPairs/rate/ETHBTC",
		"GET /hft/Wallets",
		"POST /hft/Orders/market",
		"GET /hft/Wallets",
	}, fake.recorded())
	assert.Equal(t, []string{"key-1", "key-1", "key-1"}, fake.apiKeys)
}

func TestMarketOrder_BuyAndExecuteFlag(t *testing.T) {
	fake, service := newFakeExchange(t, func(cfg *config.Config) {
		cfg.ExecuteOrders = true
	})
	fake.rates["ETHBTC"] = `{"id":"ETHBTC","bid":0.07,"ask":0.08}`
	fake.walletSnapshots = []string{
		`[{"AssetId":"ETH","Balance":10,"Reserved":0}]`,
		`[{"AssetId":"ETH","Balance":9.9,"Reserved":0}]`,
	}
	fake.orderBody = `{"Result":0.1}`

	result, err := service.MarketOrder(context.Background(), "key", "BTC", "ETH", models.Buy, dec("0.01"))
	require.NoError(t, err)
	assert.True(t, result.Amount.Equal(dec("-0.1")), "got %s", result)

	orders := fake.submittedOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, "Buy", orders[0]["OrderAction"])
	assert.Equal(t, true, orders[0]["executeOrders"])
}

func TestMarketOrder_MissingAssetCountsAsZero(t *testing.T) {
	fake, service := newFakeExchange(t)
	fake.rates["ETHBTC"] = `{"id":"ETHBTC","bid":0.07,"ask":0.08}`
	fake.walletSnapshots = []string{
		`[{"AssetId":"BTC","Balance":1,"Reserved":0}]`,
		`[{"AssetId":"BTC","Balance":0.5,"Reserved":0},{"AssetId":"eth","Balance":6.5,"Reserved":0}]`,
	}
	fake.orderBody = `{"Result":6.5}`

	result, err := service.MarketOrder(context.Background(), "key", "BTC", "ETH", models.Sell, dec("0.5"))
	require.NoError(t, err)
	assert.True(t, result.Amount.Equal(dec("6.5")))
	assert.Equal(t, "ETH", result.Currency)
}

func TestMarketOrder_NoResponseFails(t *testing.T) {
	fake, service := newFakeExchange(t)
	fake.rates["ETHBTC"] = `{"id":"ETHBTC","bid":0.07,"ask":0.08}`
	fake.walletSnapshots = []string{`[{"AssetId":"ETH","Balance":1,"Reserved":0}]`}

	result, err := service.MarketOrder(context.Background(), "key", "BTC", "ETH", models.Sell, dec("0.5"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOrderFailed))
	assert.True(t, result.Amount.IsZero())
	assert.Empty(t, result.Currency)

	var orderFailed *OrderFailedError
	require.ErrorAs(t, err, &orderFailed)
	assert.Equal(t, "BTC", orderFailed.FromCurrency)
	assert.Equal(t, "ETH", orderFailed.ToCurrency)
	assert.Equal(t, "Lykke Exchange", orderFailed.Exchange)
	assert.ErrorIs(t, err, errNoOrderResponse)
}

func TestMarketOrder_RejectedFails(t *testing.T) {
	fake, service := newFakeExchange(t)
	fake.rates["ETHBTC"] = `{"id":"ETHBTC","bid":0.07,"ask":0.08}`
	fake.walletSnapshots = []string{`[{"AssetId":"ETH","Balance":1,"Reserved":0}]`}
	fake.orderStatus = http.StatusBadRequest

	_, err := service.MarketOrder(context.Background(), "key", "BTC", "ETH", models.Sell, dec("0.5"))
	assert.ErrorIs(t, err, ErrOrderFailed)
}

func TestMarketOrder_GarbageResponseFails(t *testing.T) {
	fake, service := newFakeExchange(t)
	fake.rates["ETHBTC"] = `{"id":"ETHBTC","bid":0.07,"ask":0.08}`
	fake.walletSnapshots = []string{`[{"AssetId":"ETH","Balance":1,"Reserved":0}]`}
	fake.orderBody = `{"Result":`

	_, err := service.MarketOrder(context.Background(), "key", "BTC", "ETH", models.Sell, dec("0.5"))
	assert.ErrorIs(t, err, ErrOrderFailed)
}

func TestMarketOrder_BalanceReadFails(t *testing.T) {
	fake, service := newFakeExchange(t)
	fake.rates["ETHBTC"] = `{"id":"ETHBTC","bid":0.07,"ask":0.08}`
	fake.walletStatus = http.StatusInternalServerError
	fake.orderBody = `{"Result":1}`

	_, err := service.MarketOrder(context.Background(), "key", "BTC", "ETH", models.Sell, dec("0.5"))
	assert.ErrorIs(t, err, ErrOrderFailed)
	assert.Empty(t, fake.submittedOrders())
}

func TestMarketOrder_PairNotSupported(t *testing.T) {
	fake, service := newFakeExchange(t)
	fake.orderBody = `{"Result":1}`

	_, err := service.MarketOrder(context.Background(), "key", "XXX", "YYY", models.Buy, dec("1"))
	assert.ErrorIs(t, err, ErrPairNotSupported)
	assert.False(t, errors.Is(err, ErrOrderFailed))
	assert.Empty(t, fake.submittedOrders())
}

func TestMarketOrder_ReversedQuoteStillSubmitsPrimarySymbol(t *testing.T) {
	fake, service := newFakeExchange(t)
	fake.rates["BTCETH"] = `{"id":"BTCETH","bid":13,"ask":14}`
	fake.walletSnapshots = []string{
		`[{"AssetId":"ETH","Balance":0,"Reserved":0}]`,
		`[{"AssetId":"ETH","Balance":13,"Reserved":0}]`,
	}
	fake.orderBody = `{"Result":13}`

	_, err := service.MarketOrder(context.Background(), "key", "btc", "eth", models.Sell, dec("1"))
	require.NoError(t, err)

	orders := fake.submittedOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, "ETHBTC", orders[0]["AssetPairId"])
	assert.Equal(t, "BTC", orders[0]["Asset"])
}

func TestMarketOrder_InvalidInput(t *testing.T) {
	fake, service := newFakeExchange(t)
	fake.rates["ETHBTC"] = `{"id":"ETHBTC","bid":0.07,"ask":0.08}`

	_, err := service.MarketOrder(context.Background(), "key", "BTC", "ETH", models.Buy, dec("0"))
	assert.Error(t, err)

	_, err = service.MarketOrder(context.Background(), "key", "BTC", "ETH", models.Direction("HOLD"), dec("1"))
	assert.Error(t, err)

	_, err = service.MarketOrder(context.Background(), "key", "", "ETH", models.Buy, dec("1"))
	assert.Error(t, err)

	assert.Empty(t, fake.recorded())
}

func TestMarketOrder_CancelledIsNotUnsupported(t *testing.T) {
	fake, service := newFakeExchange(t)
	fake.rates["ETHBTC"] = `{"id":"ETHBTC","bid":0.07,"ask":0.08}`
	fake.orderBody = `{"Result":1}`

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.MarketOrder(ctx, "key", "BTC", "ETH", models.Sell, dec("0.5"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrPairNotSupported))
	assert.Empty(t, fake.submittedOrders())
}

func TestPing(t *testing.T) {
	_, service := newFakeExchange(t)
	assert.NoError(t, service.Ping(context.Background()))
}
