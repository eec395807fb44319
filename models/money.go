package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Money is an amount in minor units (paise, cents). Sums are taken in minor
// units so a period total never drifts from the two-decimal figures shown.
type Money struct {
	Cents int64
}

// MoneyFromFloat rounds v half away from zero to two decimals.
func MoneyFromFloat(v float64) Money {
	return Money{Cents: int64(math.Round(v * 100))}
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }

func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

func (m Money) IsZero() bool { return m.Cents == 0 }

// String renders the amount with exactly two decimals, e.g. "-12.05".
func (m Money) String() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON encodes the fixed-point string form.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}
