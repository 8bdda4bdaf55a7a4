package models

import "github.com/shopspring/decimal"

// WalletBalance is one asset held in the authenticated wallet
type WalletBalance struct {
	AssetID  string          `json:"AssetId"`
	Balance  decimal.Decimal `json:"Balance"`
	Reserved decimal.Decimal `json:"Reserved"`
}

// Available is the part of the balance not locked by open orders
func (b WalletBalance) Available() decimal.Decimal {
	return b.Balance.Sub(b.Reserved)
}
