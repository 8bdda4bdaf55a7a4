package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a raw public trade, e.g.
// {"id":"aef9b066-...","assetPairId":"ETHBTC","dateTime":"2018-06-13T06:49:21.902Z","volume":0.68534876,"index":4,"price":0.07624,"action":"Buy"}
type Trade struct {
	ID          string          `json:"id"`
	AssetPairID string          `json:"assetPairId"`
	DateTime    Timestamp       `json:"dateTime"`
	Volume      decimal.Decimal `json:"volume"`
	Index       int             `json:"index"`
	Price       decimal.Decimal `json:"price"`
	Action      string          `json:"action"`
}

// TradeRecord is a trade labelled with the currencies the caller asked for
type TradeRecord struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Amount       decimal.Decimal `json:"amount"`
	Price        decimal.Decimal `json:"price"`
	Direction    Direction       `json:"direction"`
	Timestamp    time.Time       `json:"timestamp"`
	GasCurrency  string          `json:"gas_currency,omitempty"`
}

// Equal compares every field; decimals and times by value
func (r TradeRecord) Equal(other TradeRecord) bool {
	return r.FromCurrency == other.FromCurrency &&
		r.ToCurrency == other.ToCurrency &&
		r.Amount.Equal(other.Amount) &&
		r.Price.Equal(other.Price) &&
		r.Direction == other.Direction &&
		r.Timestamp.Equal(other.Timestamp) &&
		r.GasCurrency == other.GasCurrency
}

// FeeType tells how a fee amount should be read
type FeeType string

const (
	FeeUnknown  FeeType = "Unknown"
	FeeAbsolute FeeType = "Absolute"
	FeeRelative FeeType = "Relative"
)

// Fee charged on a wallet trade
type Fee struct {
	Amount decimal.Decimal `json:"Amount"`
	Type   FeeType         `json:"Type"`
}

// WalletTrade is a trade from the authenticated wallet history
type WalletTrade struct {
	ID        string          `json:"Id"`
	DateTime  Timestamp       `json:"DateTime"`
	State     string          `json:"State"`
	Amount    decimal.Decimal `json:"Amount"`
	Asset     string          `json:"Asset"`
	AssetPair string          `json:"AssetPair"`
	Price     decimal.Decimal `json:"Price"`
	Fee       *Fee            `json:"Fee,omitempty"`
}
