package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateQuote is the public API's answer for /AssetPairs/rate/{symbol}
type RateQuote struct {
	ID  string          `json:"id"`
	Bid decimal.Decimal `json:"bid"`
	Ask decimal.Decimal `json:"ask"`
}

// ExchangeRate is the price of FromCurrency expressed in ToCurrency.
// Sell is what a seller of FromCurrency would get, Buy is what a buyer pays.
type ExchangeRate struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Sell         decimal.Decimal `json:"sell"`
	Buy          decimal.Decimal `json:"buy"`
	ObservedAt   time.Time       `json:"observed_at"`
}
