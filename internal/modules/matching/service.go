// README: Matching service; runs the traveler's acceptance workflow.
package matching

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"packpal/internal/geo"
	"packpal/internal/modules/notification"
	"packpal/internal/modules/parcel"
	"packpal/internal/modules/pricing"
	"packpal/internal/modules/travel"
	"packpal/internal/types"
)

// PackageStore is the slice of the parcel store the workflow needs.
type PackageStore interface {
	Get(ctx context.Context, id types.ID) (*parcel.Package, error)
	GetMany(ctx context.Context, ids []types.ID) ([]*parcel.Package, error)
	AssignTraveler(ctx context.Context, id, travelerID types.ID, price types.Money, from parcel.Status) (bool, error)
}

// TravelStore creates the travel record for an accepted package.
type TravelStore interface {
	Create(ctx context.Context, t *travel.Travel) error
}

// Quoter prices a delivery.
type Quoter interface {
	Quote(req pricing.QuoteRequest) (types.Money, error)
}

// Notifier delivers the acceptance notice to the sender.
type Notifier interface {
	Send(ctx context.Context, n notification.Notification) error
}

// PendingIndex is the browse-side view of pending packages.
type PendingIndex interface {
	IndexPending(ctx context.Context, id types.ID, pickup types.Point) error
	RemovePending(ctx context.Context, id types.ID) error
	NearbyPending(ctx context.Context, origin types.Point, radiusKm float64) ([]types.ID, error)
}

type Service struct {
	parcels  PackageStore
	travels  TravelStore
	pricing  Quoter
	notifier Notifier
	index    PendingIndex
	log      *zap.Logger
}

// NewService wires the acceptance workflow. notifier and index may be nil.
func NewService(parcels PackageStore, travels TravelStore, quoter Quoter, notifier Notifier, index PendingIndex, log *zap.Logger) *Service {
	return &Service{
		parcels:  parcels,
		travels:  travels,
		pricing:  quoter,
		notifier: notifier,
		index:    index,
		log:      log,
	}
}

type AcceptCommand struct {
	PackageID  types.ID
	TravelerID types.ID
	// Medium defaults to car, the only medium the mobile client offers today.
	Medium pricing.Medium
}

// Accept runs the whole acceptance chain for one traveler action:
// fetch -> price -> commit -> travel record -> sender notification.
//
// A missing package or a lost commit race is fatal and returns an error.
// Pricing edge cases fall back to safe defaults, and everything after the
// travel record is best-effort: a dead notification channel never unwinds
// the commits already made. The receipt's Steps list records each stage's
// outcome either way.
func (s *Service) Accept(ctx context.Context, cmd AcceptCommand) (*Acceptance, error) {
	if cmd.Medium == "" {
		cmd.Medium = pricing.MediumCar
	}

	pkg, err := s.parcels.Get(ctx, cmd.PackageID)
	if err != nil {
		return nil, err
	}

	acc := &Acceptance{
		PackageID:      pkg.ID,
		TrackingNumber: pkg.TrackingNumber,
		Dropoff:        pkg.Delivery.Position,
	}

	// Priced
	price := s.price(ctx, pkg, cmd.Medium, acc)

	// Committed: the conditional write on the pending status is the
	// arbitration point between racing travelers.
	ok, err := s.parcels.AssignTraveler(ctx, pkg.ID, cmd.TravelerID, price, parcel.StatusPending)
	if err != nil {
		acc.Steps = append(acc.Steps, StepResult{Step: StepCommit, Err: err})
		return acc, fmt.Errorf("updating package %s: %w", pkg.ID, err)
	}
	if !ok {
		acc.Steps = append(acc.Steps, StepResult{Step: StepCommit, Err: ErrAlreadyAccepted})
		return acc, ErrAlreadyAccepted
	}
	acc.Steps = append(acc.Steps, StepResult{Step: StepCommit})

	// Logged: there is no cross-store transaction here. If this write
	// fails the package stays in_progress with a traveler attached and no
	// travel record; we surface the error rather than invent a rollback.
	t := &travel.Travel{
		ID:             types.ID(uuid.NewString()),
		TravelerID:     cmd.TravelerID,
		PackageID:      pkg.ID,
		Start:          fillPlaceNames(pkg.Pickup),
		Destination:    fillPlaceNames(pkg.Delivery),
		Medium:         cmd.Medium,
		TrackingNumber: pkg.TrackingNumber,
		Price:          price,
		Status:         travel.StatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.travels.Create(ctx, t); err != nil {
		acc.Steps = append(acc.Steps, StepResult{Step: StepTravel, Err: err})
		s.log.Error("travel record creation failed after package commit",
			zap.String("package_id", string(pkg.ID)),
			zap.String("traveler_id", string(cmd.TravelerID)),
			zap.Error(err))
		return acc, fmt.Errorf("creating travel for package %s: %w", pkg.ID, err)
	}
	acc.TravelID = t.ID
	acc.Steps = append(acc.Steps, StepResult{Step: StepTravel})

	// Notified: best-effort from here on.
	s.notifySender(ctx, pkg, cmd.TravelerID, acc)

	if s.index != nil {
		if err := s.index.RemovePending(ctx, pkg.ID); err != nil {
			s.log.Warn("pending index removal failed",
				zap.String("package_id", string(pkg.ID)), zap.Error(err))
		}
	}

	return acc, nil
}

// BrowsePending returns pending packages whose pickup point lies within
// radiusKm of the origin. Index hits are re-checked against Postgres so a
// stale entry never surfaces an already-taken package.
func (s *Service) BrowsePending(ctx context.Context, origin types.Point, radiusKm float64) ([]*parcel.Package, error) {
	if err := geo.Validate(origin); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		radiusKm = 25
	}
	ids, err := s.index.NearbyPending(ctx, origin, radiusKm)
	if err != nil {
		return nil, err
	}
	pkgs, err := s.parcels.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := pkgs[:0]
	for _, p := range pkgs {
		if p.Status == parcel.StatusPending {
			out = append(out, p)
		}
	}
	return out, nil
}

// price computes distance and quote with the workflow's safe defaults: a
// bad coordinate prices as 0 km, an unknown weight label as 0 kg. The
// acceptance completes either way.
func (s *Service) price(ctx context.Context, pkg *parcel.Package, medium pricing.Medium, acc *Acceptance) types.Money {
	distanceKm, err := geo.DistanceKm(pkg.Pickup.Position, pkg.Delivery.Position)
	if err != nil {
		s.log.Warn("distance computation failed, defaulting to 0 km",
			zap.String("package_id", string(pkg.ID)), zap.Error(err))
		distanceKm = 0
	}
	acc.DistanceKm = distanceKm

	wc := parcel.WeightClassFromLabel(pkg.WeightLabel)
	if wc == parcel.WeightUnknown && pkg.WeightLabel != "" {
		s.log.Warn("unknown weight label, pricing at 0 kg",
			zap.String("package_id", string(pkg.ID)),
			zap.String("weight_label", pkg.WeightLabel))
	}

	price, qerr := s.pricing.Quote(pricing.QuoteRequest{
		DistanceKm: distanceKm,
		Medium:     medium,
		Size:       pkg.Size,
		WeightKg:   wc.Kg(),
		Content:    pkg.Content,
	})
	if qerr != nil {
		s.log.Warn("quote failed, defaulting to 0",
			zap.String("package_id", string(pkg.ID)), zap.Error(qerr))
		price = types.Rupees(0)
	}
	acc.Price = price
	acc.Steps = append(acc.Steps, StepResult{Step: StepPrice, Err: firstErr(err, qerr)})
	return price
}

func (s *Service) notifySender(ctx context.Context, pkg *parcel.Package, travelerID types.ID, acc *Acceptance) {
	if s.notifier == nil {
		acc.Steps = append(acc.Steps, StepResult{Step: StepNotify})
		return
	}
	err := s.notifier.Send(ctx, notification.Notification{
		RecipientID: pkg.SenderID,
		Title:       "Package Accepted by Traveler",
		Body:        fmt.Sprintf("Your package (%s) has been accepted and is now in progress.", pkg.TrackingNumber),
		Data: map[string]string{
			"package_id":      string(pkg.ID),
			"status":          string(parcel.StatusInProgress),
			"tracking_number": pkg.TrackingNumber,
			"traveler_id":     string(travelerID),
		},
	})
	if err != nil {
		s.log.Warn("sender notification failed",
			zap.String("package_id", string(pkg.ID)), zap.Error(err))
	}
	acc.Steps = append(acc.Steps, StepResult{Step: StepNotify, Err: err})
}

// fillPlaceNames substitutes the historical placeholders for missing city
// and state so travel records stay displayable.
func fillPlaceNames(loc parcel.Location) parcel.Location {
	if loc.City == "" {
		loc.City = "Unknown City"
	}
	if loc.State == "" {
		loc.State = "Unknown State"
	}
	return loc
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
