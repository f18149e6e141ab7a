// README: Acceptance receipt and per-step outcome reporting.
package matching

import (
	"errors"

	"packpal/internal/types"
)

// ErrAlreadyAccepted is returned when the conditional commit finds the
// package no longer pending: another traveler won the race, or the sender
// cancelled.
var ErrAlreadyAccepted = errors.New("package already accepted")

// Step names the stages of the acceptance workflow that run after the
// package has been fetched.
type Step string

const (
	StepPrice  Step = "price"
	StepCommit Step = "commit"
	StepTravel Step = "travel"
	StepNotify Step = "notify"
)

// StepResult records one stage's outcome. The workflow reports every stage
// it reached, including the ones that failed without aborting it, so
// callers and tests can see exactly which side effects happened.
type StepResult struct {
	Step Step
	Err  error
}

func (r StepResult) OK() bool { return r.Err == nil }

// Acceptance is the receipt handed to the journey screen: the new travel,
// the agreed price, and where to drive.
type Acceptance struct {
	PackageID      types.ID
	TravelID       types.ID
	TrackingNumber string
	DistanceKm     float64
	Price          types.Money
	Dropoff        types.Point
	Steps          []StepResult
}

// StepOK reports whether the named step ran and succeeded.
func (a *Acceptance) StepOK(step Step) bool {
	for _, r := range a.Steps {
		if r.Step == step {
			return r.OK()
		}
	}
	return false
}
