// README: Pricing service computes delivery quotes.
package pricing

import (
	"errors"
	"math"

	"packpal/internal/types"
)

// ErrInvalidQuote is returned when a quote input is negative or not finite.
var ErrInvalidQuote = errors.New("invalid quote input")

// maxQuoteRupees bounds the rounded subtotal so the float-to-int conversion
// cannot overflow into a negative amount. Any real delivery prices orders of
// magnitude below this.
const maxQuoteRupees = 1e15

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Quote prices a delivery. Deterministic, no I/O:
//
//	round((base + perKm*distance + perKg*weight) * sizeMultiplier) + contentSurcharge
//
// The result is non-negative and non-decreasing in both distance and weight.
// Inputs so large that the rupee amount would overflow are rejected with
// ErrInvalidQuote.
func (s *Service) Quote(req QuoteRequest) (types.Money, error) {
	if !isFiniteNonNegative(req.DistanceKm) || !isFiniteNonNegative(req.WeightKg) {
		return types.Money{}, ErrInvalidQuote
	}

	rate, ok := rateCard[req.Medium]
	if !ok {
		rate = rateCard[MediumCar]
	}
	mult, ok := sizeMultiplier[req.Size]
	if !ok {
		mult = 1.0
	}

	subtotal := rate.Base + rate.PerKm*req.DistanceKm + perKgRate*req.WeightKg
	total := math.Round(subtotal * mult)
	if total > maxQuoteRupees {
		return types.Money{}, ErrInvalidQuote
	}
	amount := int64(total) + contentSurcharge[req.Content]

	return types.Rupees(amount), nil
}

func isFiniteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
