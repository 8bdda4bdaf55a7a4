package models

import (
	"fmt"
	"strings"
)

// Direction is the side of a trade from the point of view of the from currency
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// ParseDirection accepts BUY or SELL in any casing
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("trade type %q is not supported, expected BUY or SELL", s)
	}
}

// DirectionFromAction maps an exchange action string. Only "Buy" is a buy;
// anything else is treated as a sell.
func DirectionFromAction(action string) Direction {
	if action == "Buy" {
		return Buy
	}
	return Sell
}

// OrderAction is the exchange's spelling of the direction
func (d Direction) OrderAction() string {
	if d == Buy {
		return "Buy"
	}
	return "Sell"
}

func (d Direction) String() string {
	return string(d)
}
