package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/kelsos/lykke-cli/internal/models"
	"github.com/kelsos/lykke-cli/internal/money"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	buyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	sellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

func row(key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(key), valueStyle.Render(value))
}

func directionLabel(d models.Direction) string {
	if d == models.Buy {
		return buyStyle.Render(string(d))
	}
	return sellStyle.Render(string(d))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

// RenderExchangeRate renders a single rate quote
func RenderExchangeRate(rate models.ExchangeRate) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s/%s", rate.FromCurrency, rate.ToCurrency)),
		row("Sell", rate.Sell.String()),
		row("Buy", rate.Buy.String()),
		row("Observed", formatTime(rate.ObservedAt)),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// RenderTradeRecords renders public trades, newest first as returned
func RenderTradeRecords(from, to string, records []models.TradeRecord) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(fmt.Sprintf("Trades %s/%s (%d)", from, to, len(records))))
	s.WriteString("\n")

	if len(records) == 0 {
		s.WriteString(valueStyle.Render("No trades"))
		return s.String()
	}

	for _, record := range records {
		s.WriteString(fmt.Sprintf("%s  %-4s  %s @ %s\n",
			formatTime(record.Timestamp),
			directionLabel(record.Direction),
			record.Amount.String(),
			record.Price.String(),
		))
	}
	return strings.TrimRight(s.String(), "\n")
}

// RenderWalletTrades renders the authenticated trade history
func RenderWalletTrades(trades []models.WalletTrade) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(fmt.Sprintf("Wallet trades (%d)", len(trades))))
	s.WriteString("\n")

	if len(trades) == 0 {
		s.WriteString(valueStyle.Render("No trades"))
		return s.String()
	}

	for _, trade := range trades {
		fee := "-"
		if trade.Fee != nil {
			fee = fmt.Sprintf("%s (%s)", trade.Fee.Amount.String(), trade.Fee.Type)
		}
		s.WriteString(fmt.Sprintf("%s  %-8s  %s %s  %s @ %s  fee %s\n",
			formatTime(trade.DateTime.Time),
			trade.State,
			trade.Amount.String(),
			trade.Asset,
			trade.AssetPair,
			trade.Price.String(),
			fee,
		))
	}
	return strings.TrimRight(s.String(), "\n")
}

// RenderBalances renders every wallet balance with its available part
func RenderBalances(balances []models.WalletBalance) string {
	lines := []string{titleStyle.Render("Wallet balances")}
	if len(balances) == 0 {
		lines = append(lines, valueStyle.Render("Wallet is empty"))
	}
	for _, balance := range balances {
		lines = append(lines, row(balance.AssetID, balanceLine(balance)))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// RenderBalance renders one asset, or a notice when it is absent
func RenderBalance(asset string, balance models.WalletBalance, found bool) string {
	if !found {
		return boxStyle.Render(row(asset, money.Zero(asset).String()+" (not held)"))
	}
	return boxStyle.Render(row(balance.AssetID, balanceLine(balance)))
}

func balanceLine(balance models.WalletBalance) string {
	if balance.Reserved.Equal(decimal.Zero) {
		return balance.Balance.String()
	}
	return fmt.Sprintf("%s (available %s, reserved %s)",
		balance.Balance.String(),
		balance.Available().String(),
		balance.Reserved.String(),
	)
}

// RenderOrderResult renders the amount a market order settled
func RenderOrderResult(direction models.Direction, from string, volume decimal.Decimal, received money.Money) string {
	lines := []string{
		titleStyle.Render("Market order settled"),
		row("Direction", directionLabel(direction)),
		row("Volume", fmt.Sprintf("%s %s", volume.String(), strings.ToUpper(from))),
		row("Change", received.String()),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
