package pair

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Resolve when no candidate symbol has data
var ErrNotFound = errors.New("no data for currency pair")

// Pair is a (from, to) currency combination as requested by the caller
type Pair struct {
	From string
	To   string
}

// Resolution is the exchange symbol that served a lookup and whether it is
// the inverse of the requested pair.
type Resolution struct {
	Symbol   string
	Reversed bool
}

// New validates and builds a Pair. Currency codes are trimmed but keep their
// original casing so results can be reported back the way they were asked.
func New(from, to string) (Pair, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)

	if from == "" {
		return Pair{}, fmt.Errorf("from currency cannot be empty")
	}
	if to == "" {
		return Pair{}, fmt.Errorf("to currency cannot be empty")
	}
	return Pair{From: from, To: to}, nil
}

// Symbol is the exchange's name for the pair: quote currency first
func (p Pair) Symbol() string {
	return strings.ToUpper(p.To) + strings.ToUpper(p.From)
}

// ReverseSymbol is the symbol of the inverse pairing
func (p Pair) ReverseSymbol() string {
	return strings.ToUpper(p.From) + strings.ToUpper(p.To)
}

// Candidates lists the symbols to try, in order
func (p Pair) Candidates() []Resolution {
	return []Resolution{
		{Symbol: p.Symbol()},
		{Symbol: p.ReverseSymbol(), Reversed: true},
	}
}

func (p Pair) String() string {
	return fmt.Sprintf("%s/%s", p.From, p.To)
}

// LookupFunc fetches data for a single symbol. found=false with a nil error
// means the exchange has nothing for that symbol.
type LookupFunc[T any] func(symbol string) (value T, found bool, err error)

// Resolve tries the primary symbol and then the reverse one. A lookup error
// counts as "not found" so the reverse symbol still gets its chance; if
// neither candidate yields data the result wraps ErrNotFound together with
// the last lookup error. Cancellation and deadline errors stop the lookup
// and are returned as they are.
func Resolve[T any](p Pair, lookup LookupFunc[T]) (T, Resolution, error) {
	var zero T
	var lastErr error

	for _, candidate := range p.Candidates() {
		value, found, err := lookup(candidate.Symbol)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return zero, Resolution{}, err
			}
			lastErr = err
			continue
		}
		if found {
			return value, candidate, nil
		}
	}

	if lastErr != nil {
		return zero, Resolution{}, errors.Join(ErrNotFound, lastErr)
	}
	return zero, Resolution{}, ErrNotFound
}
