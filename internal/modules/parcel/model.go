// README: Package aggregate, status flow, and attribute vocabularies.
package parcel

import (
	"time"

	"packpal/internal/types"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// AllowedTransitions represents the package status flow as code. Statuses
// only move forward; delivered and cancelled are terminal.
var AllowedTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusDelivered, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

type Content string

const (
	ContentStandard   Content = "standard"
	ContentFragile    Content = "fragile"
	ContentValuable   Content = "valuable"
	ContentPerishable Content = "perishable"
)

// WeightClass is the closed enumeration behind the human-readable weight
// range labels the mobile client submits. The labels carry no exact weight,
// so pricing uses a representative kg value per class.
type WeightClass int

const (
	WeightUnknown WeightClass = iota
	WeightLight
	WeightMedium
	WeightHeavy
)

// WeightClassFromLabel maps a client weight label to its class. Unknown
// labels resolve to WeightUnknown (0 kg) rather than failing, which
// under-prices the delivery; callers should log when that happens.
func WeightClassFromLabel(label string) WeightClass {
	switch label {
	case "Light (1-5 kg)":
		return WeightLight
	case "Medium (5-10 kg)":
		return WeightMedium
	case "Heavy (10-20 Kg)", "Heavy (10-20 kg)":
		return WeightHeavy
	default:
		return WeightUnknown
	}
}

// Kg returns the representative weight used for pricing.
func (w WeightClass) Kg() float64 {
	switch w {
	case WeightLight:
		return 3
	case WeightMedium:
		return 7.5
	case WeightHeavy:
		return 15
	default:
		return 0
	}
}

// Location is one end of a package route.
type Location struct {
	Address  string
	Position types.Point
	City     string
	State    string
	ZipCode  string
}

// Receiver identifies who takes delivery at the destination.
type Receiver struct {
	Name     string
	Phone    string
	Email    string
	AltPhone string
}

type Package struct {
	ID             types.ID
	SenderID       types.ID
	TrackingNumber string
	Status         Status
	Type           string
	WeightLabel    string
	Size           Size
	Content        Content
	Description    string
	Pickup         Location
	Delivery       Location
	Receiver       Receiver
	TravelerID     *types.ID
	Price          *types.Money
	CreatedAt      time.Time
}
