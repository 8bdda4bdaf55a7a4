package services

import (
	"errors"
	"fmt"
)

var (
	// ErrPairNotSupported matches every PairNotSupportedError
	ErrPairNotSupported = errors.New("currency combination not supported")
	// ErrOrderFailed matches every OrderFailedError
	ErrOrderFailed = errors.New("market order failed")
)

// PairNotSupportedError means neither the pair nor its inverse has data at the exchange
type PairNotSupportedError struct {
	Exchange     string
	FromCurrency string
	ToCurrency   string
	Err          error
}

func (e *PairNotSupportedError) Error() string {
	msg := fmt.Sprintf("currency combination %s/%s is not supported at %s", e.FromCurrency, e.ToCurrency, e.Exchange)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *PairNotSupportedError) Is(target error) bool {
	return target == ErrPairNotSupported
}

func (e *PairNotSupportedError) Unwrap() error {
	return e.Err
}

// OrderFailedError means a market order could not be confirmed as executed
type OrderFailedError struct {
	Exchange     string
	FromCurrency string
	ToCurrency   string
	Err          error
}

func (e *OrderFailedError) Error() string {
	msg := fmt.Sprintf("market order %s -> %s failed at %s", e.FromCurrency, e.ToCurrency, e.Exchange)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *OrderFailedError) Is(target error) bool {
	return target == ErrOrderFailed
}

func (e *OrderFailedError) Unwrap() error {
	return e.Err
}
