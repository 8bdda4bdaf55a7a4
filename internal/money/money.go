package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrMismatchedCurrency is matched by every MismatchedCurrencyError
var ErrMismatchedCurrency = errors.New("mismatched currency")

// ErrDivisionByZero is returned by Div when the divisor is zero
var ErrDivisionByZero = errors.New("division by zero")

// MismatchedCurrencyError reports a binary operation between two different currencies
type MismatchedCurrencyError struct {
	A Money
	B Money
}

func (e *MismatchedCurrencyError) Error() string {
	return fmt.Sprintf("%s and %s have different currencies", e.A, e.B)
}

func (e *MismatchedCurrencyError) Is(target error) bool {
	return target == ErrMismatchedCurrency
}

// Money is an amount tagged with the currency it is denominated in.
// Values are immutable, every operation returns a new Money.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// New creates a Money value
func New(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// NewFromString parses amount and tags it with currency
func NewFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return New(d, currency), nil
}

// Zero returns a zero amount of currency
func Zero(currency string) Money {
	return New(decimal.Zero, currency)
}

func (m Money) check(other Money) error {
	if m.Currency != other.Currency {
		return &MismatchedCurrencyError{A: m, B: other}
	}
	return nil
}

// Add returns m + other
func (m Money) Add(other Money) (Money, error) {
	if err := m.check(other); err != nil {
		return Money{}, err
	}
	return New(m.Amount.Add(other.Amount), m.Currency), nil
}

// Sub returns m - other
func (m Money) Sub(other Money) (Money, error) {
	if err := m.check(other); err != nil {
		return Money{}, err
	}
	return New(m.Amount.Sub(other.Amount), m.Currency), nil
}

// Neg returns -m
func (m Money) Neg() Money {
	return New(m.Amount.Neg(), m.Currency)
}

// Mul scales m by f
func (m Money) Mul(f decimal.Decimal) Money {
	return New(m.Amount.Mul(f), m.Currency)
}

// Div divides m by f
func (m Money) Div(f decimal.Decimal) (Money, error) {
	if f.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	return New(m.Amount.Div(f), m.Currency), nil
}

// Cmp compares the amounts of m and other: -1, 0 or +1
func (m Money) Cmp(other Money) (int, error) {
	if err := m.check(other); err != nil {
		return 0, err
	}
	return m.Amount.Cmp(other.Amount), nil
}

// Equal reports whether both amounts are numerically equal.
// Unlike ==, 1.0 and 1.00 are equal.
func (m Money) Equal(other Money) (bool, error) {
	return m.compare(other, func(c int) bool { return c == 0 })
}

// LessThan reports whether m < other. It fails on mismatched currencies.
func (m Money) LessThan(other Money) (bool, error) {
	return m.compare(other, func(c int) bool { return c < 0 })
}

// LessThanOrEqual reports whether m <= other. It fails on mismatched currencies.
func (m Money) LessThanOrEqual(other Money) (bool, error) {
	return m.compare(other, func(c int) bool { return c <= 0 })
}

// GreaterThan reports whether m > other. It fails on mismatched currencies.
func (m Money) GreaterThan(other Money) (bool, error) {
	return m.compare(other, func(c int) bool { return c > 0 })
}

// GreaterThanOrEqual reports whether m >= other. It fails on mismatched currencies.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	return m.compare(other, func(c int) bool { return c >= 0 })
}

func (m Money) compare(other Money, pred func(int) bool) (bool, error) {
	c, err := m.Cmp(other)
	if err != nil {
		return false, err
	}
	return pred(c), nil
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.String(), m.Currency)
}
