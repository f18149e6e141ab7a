// README: Travel aggregate; a traveler's accepted trip fulfilling one package.
package travel

import (
	"time"

	"packpal/internal/modules/parcel"
	"packpal/internal/modules/pricing"
	"packpal/internal/types"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// AllowedTransitions is the travel lifecycle, separate from the package
// lifecycle it fulfils.
var AllowedTransitions = map[Status][]Status{
	StatusPending: {StatusStarted, StatusCancelled},
	StatusStarted: {StatusCompleted, StatusCancelled},
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

// Travel references exactly one package. TrackingNumber and Price are copied
// from the package at matching time.
type Travel struct {
	ID             types.ID
	TravelerID     types.ID
	PackageID      types.ID
	Start          parcel.Location
	Destination    parcel.Location
	Medium         pricing.Medium
	TrackingNumber string
	Price          types.Money
	Notes          string
	Status         Status
	CreatedAt      time.Time
}
