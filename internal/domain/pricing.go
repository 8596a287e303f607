package domain

import "math"

// QuoteBreakdown holds the derived amounts for a quote
type QuoteBreakdown struct {
	Subtotal     float64 `json:"subtotal"`
	MarginAmount float64 `json:"marginAmount"`
	Total        float64 `json:"total"`
}

// ComputeQuoteTotal derives the quote total from its cost components.
// The server is the sole source of truth for this value; any total supplied
// by a client is discarded and recomputed here.
//
//	subtotal = materials + labor + additional
//	total    = subtotal * (1 + margin/100), rounded to cents
func ComputeQuoteTotal(materials, labor, additional, margin float64) QuoteBreakdown {
	subtotal := materials + labor + additional
	marginAmount := subtotal * (margin / 100)
	return QuoteBreakdown{
		Subtotal:     RoundCurrency(subtotal),
		MarginAmount: RoundCurrency(marginAmount),
		Total:        RoundCurrency(subtotal + marginAmount),
	}
}

// RoundCurrency rounds to two decimal places, half away from zero
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
