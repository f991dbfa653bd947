/*
Package generic provides the shared building blocks of the service engine.

PURPOSE:
  Domain-agnostic types used by every other package: calendar days, day
  ranges, money amounts and the accrual schedule contract. The timeline,
  pay, budget and leave packages build on these without knowing about
  each other.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A decimal quantity with a unit (e.g., 6.10 EUR)
  - Unit:   What an Amount counts

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal; rounding happens once, at display
  2. Determinism: Nothing here reads the wall clock
  3. Type Safety: Units travel with values

USAGE:
  rate := generic.NewAmountFromString("6.10", generic.UnitEUR)
  total := rate.Mul(decimal.NewFromInt(165)) // 1006.50 EUR

SEE ALSO:
  - time.go: TimePoint and day arithmetic
  - period.go: Inclusive day ranges
  - accrual.go: AccrualSchedule interface
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const UnitEUR Unit = "EUR"

// DisplayPlaces is the number of decimals shown for currency.
const DisplayPlaces = 2

// NewAmountFromString builds an amount from a literal such as "6.10".
// Invalid literals yield zero; use ParseAmount for user input.
func NewAmountFromString(value string, unit Unit) Amount {
	return Amount{Value: MustParseDecimal(value), Unit: unit}
}

func ZeroAmount(unit Unit) Amount { return Amount{Value: decimal.Zero, Unit: unit} }

func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s), Unit: a.Unit} }
func (a Amount) MulInt(n int) Amount          { return a.Mul(decimal.NewFromInt(int64(n))) }
func (a Amount) IsNegative() bool             { return a.Value.IsNegative() }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }
func (a Amount) IsPositive() bool             { return a.Value.IsPositive() }
func (a Amount) Equal(b Amount) bool          { return a.Value.Equal(b.Value) }
func (a Amount) GreaterThan(b Amount) bool    { return a.Value.GreaterThan(b.Value) }
func (a Amount) LessThan(b Amount) bool       { return a.Value.LessThan(b.Value) }

// Display renders the amount rounded half-up to two places, e.g. "1006.50".
func (a Amount) Display() string {
	return a.Value.StringFixed(DisplayPlaces)
}

// Sum adds amounts, returning zero in unit when the slice is empty.
func Sum(unit Unit, amounts ...Amount) Amount {
	total := ZeroAmount(unit)
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
