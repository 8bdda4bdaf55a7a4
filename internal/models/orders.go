package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MarketOrderRequest is the body of POST /Orders/market.
// Volume goes out as a bare JSON number.
type MarketOrderRequest struct {
	AssetPairID   string      `json:"AssetPairId"`
	Asset         string      `json:"Asset"`
	OrderAction   string      `json:"OrderAction"`
	Volume        json.Number `json:"Volume"`
	ExecuteOrders bool        `json:"executeOrders"`
}

// NewMarketOrderRequest builds the request body for an order on symbol
func NewMarketOrderRequest(symbol, asset string, direction Direction, volume decimal.Decimal, execute bool) MarketOrderRequest {
	return MarketOrderRequest{
		AssetPairID:   symbol,
		Asset:         asset,
		OrderAction:   direction.OrderAction(),
		Volume:        json.Number(volume.String()),
		ExecuteOrders: execute,
	}
}

// MarketOrderResult is the answer to a market order. Result is not trusted
// as the traded amount, it is only logged.
type MarketOrderResult struct {
	Result *decimal.Decimal `json:"Result"`
}
