// README: Delivery pricing policy tables.
package pricing

import "packpal/internal/modules/parcel"

// Medium is how the traveler moves the package.
type Medium string

const (
	MediumCar           Medium = "car"
	MediumBike          Medium = "bike"
	MediumPublicTransit Medium = "public_transit"
)

// Rate is the distance component of a quote, in rupees.
type Rate struct {
	Base  float64
	PerKm float64
}

// Policy coefficients. Unknown keys fall back to the car rate / multiplier 1
// / surcharge 0 so a quote always completes.
var (
	rateCard = map[Medium]Rate{
		MediumCar:           {Base: 50, PerKm: 8},
		MediumBike:          {Base: 30, PerKm: 5},
		MediumPublicTransit: {Base: 20, PerKm: 3},
	}

	sizeMultiplier = map[parcel.Size]float64{
		parcel.SizeSmall:  1.0,
		parcel.SizeMedium: 1.25,
		parcel.SizeLarge:  1.5,
	}

	contentSurcharge = map[parcel.Content]int64{
		parcel.ContentStandard:   0,
		parcel.ContentFragile:    40,
		parcel.ContentPerishable: 50,
		parcel.ContentValuable:   60,
	}
)

// perKgRate is the weight surcharge in rupees per representative kg.
const perKgRate = 6.0

// QuoteRequest carries every input the engine prices on. WeightKg is the
// representative weight derived from the package's weight class; an unknown
// weight label contributes 0 kg.
type QuoteRequest struct {
	DistanceKm float64
	Medium     Medium
	Size       parcel.Size
	WeightKg   float64
	Content    parcel.Content
}
