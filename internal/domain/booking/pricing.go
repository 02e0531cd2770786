package booking

import (
	"github.com/shopspring/decimal"
)

// RateSchedule holds the pricing parameters for a room. Monetary values use
// decimal arithmetic; float currency drifts and is not acceptable here.
type RateSchedule struct {
	// PricePerNight is the nightly rate in major currency units.
	PricePerNight decimal.Decimal
	// CleaningFee is charged once per booking regardless of nights or guests.
	CleaningFee decimal.Decimal
	// TaxRate is a fraction in [0, 1) applied to the pre-tax subtotal.
	TaxRate decimal.Decimal
}

// PriceBreakdown is the itemized cost of a stay. It is derived, never
// stored or cached: callers recompute it whenever range, guests, or rates
// change so a stale total cannot survive an input edit.
type PriceBreakdown struct {
	Nights   int
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeBreakdown derives the itemized price for a validated stay.
// Pure function: identical inputs always produce an identical breakdown.
//
//	subtotal = pricePerNight * nights * guests
//	tax      = subtotal * taxRate
//	total    = subtotal + cleaningFee + tax
func ComputeBreakdown(rng StayRange, guests GuestCount, rates RateSchedule) PriceBreakdown {
	nights := rng.Nights()

	subtotal := rates.PricePerNight.
		Mul(decimal.NewFromInt(int64(nights))).
		Mul(decimal.NewFromInt(int64(guests.Int()))).
		Round(2)

	tax := subtotal.Mul(rates.TaxRate).Round(2)

	total := subtotal.Add(rates.CleaningFee).Add(tax).Round(2)

	return PriceBreakdown{
		Nights:   nights,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
	}
}
