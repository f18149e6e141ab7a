// README: Package submission service; validates a draft, fills gaps, persists.
package parcel

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"packpal/internal/modules/notification"
	"packpal/internal/types"
)

// PackageStore is the persistence boundary; *Store is the Postgres
// implementation.
type PackageStore interface {
	Create(ctx context.Context, p *Package) error
	Get(ctx context.Context, id types.ID) (*Package, error)
	ListPending(ctx context.Context, limit int) ([]*Package, error)
}

// Geocoder resolves a street address to coordinates when the client did not
// attach any.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (types.Point, error)
}

// ContentSuggester classifies a free-text description into a content class.
type ContentSuggester interface {
	SuggestContent(ctx context.Context, description string) (Content, error)
}

// PendingIndex registers a pending package's pickup point for traveler
// radius browsing.
type PendingIndex interface {
	IndexPending(ctx context.Context, id types.ID, pickup types.Point) error
}

// Notifier delivers the post-submission confirmation to the sender.
type Notifier interface {
	Send(ctx context.Context, n notification.Notification) error
}

type Service struct {
	store     PackageStore
	geocoder  Geocoder
	suggester ContentSuggester
	index     PendingIndex
	notifier  Notifier
	log       *zap.Logger
}

// NewService wires the submission flow. geocoder, suggester, index, and
// notifier may be nil; every one of them is a best-effort enrichment.
func NewService(store PackageStore, geocoder Geocoder, suggester ContentSuggester, index PendingIndex, notifier Notifier, log *zap.Logger) *Service {
	return &Service{
		store:     store,
		geocoder:  geocoder,
		suggester: suggester,
		index:     index,
		notifier:  notifier,
		log:       log,
	}
}

// Submit turns a validated draft into a pending package. Geocoding,
// content classification, pending-index registration, and the confirmation
// notification are all best-effort; only draft validation and the package
// insert can fail the submission.
func (s *Service) Submit(ctx context.Context, senderID types.ID, d Draft) (*Package, error) {
	if senderID.IsZero() {
		return nil, ErrIncompleteDraft
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	pickup := s.resolveLocation(ctx, d.Pickup)
	delivery := s.resolveLocation(ctx, d.Delivery)
	content := s.resolveContent(ctx, d)

	if WeightClassFromLabel(d.WeightLabel) == WeightUnknown {
		s.log.Warn("unknown weight label, package will price at 0 kg",
			zap.String("weight_label", d.WeightLabel))
	}

	p := &Package{
		ID:             types.ID(uuid.NewString()),
		SenderID:       senderID,
		TrackingNumber: newTrackingNumber(),
		Status:         StatusPending,
		Type:           d.Type,
		WeightLabel:    d.WeightLabel,
		Size:           d.Size,
		Content:        content,
		Description:    d.Description,
		Pickup:         pickup,
		Delivery:       delivery,
		Receiver:       d.Receiver,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.index != nil {
		if err := s.index.IndexPending(ctx, p.ID, p.Pickup.Position); err != nil {
			s.log.Warn("pending index update failed",
				zap.String("package_id", string(p.ID)), zap.Error(err))
		}
	}

	if s.notifier != nil {
		err := s.notifier.Send(ctx, notification.Notification{
			RecipientID: senderID,
			Title:       "Package Uploaded",
			Body:        "Your package has been uploaded successfully.",
			Data: map[string]string{
				"package_id":      string(p.ID),
				"tracking_number": p.TrackingNumber,
			},
		})
		if err != nil {
			s.log.Warn("upload confirmation failed",
				zap.String("package_id", string(p.ID)), zap.Error(err))
		}
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Package, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListPending(ctx context.Context, limit int) ([]*Package, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.store.ListPending(ctx, limit)
}

// resolveLocation geocodes an address the client submitted without
// coordinates. A geocoding failure keeps the zero coordinates; the
// acceptance workflow tolerates them.
func (s *Service) resolveLocation(ctx context.Context, loc Location) Location {
	if s.geocoder == nil || loc.Address == "" {
		return loc
	}
	if loc.Position.Lat != 0 || loc.Position.Lng != 0 {
		return loc
	}
	pos, err := s.geocoder.Geocode(ctx, loc.Address)
	if err != nil {
		s.log.Warn("geocoding failed", zap.String("address", loc.Address), zap.Error(err))
		return loc
	}
	loc.Position = pos
	return loc
}

// resolveContent fills an empty content class from the description,
// defaulting to standard.
func (s *Service) resolveContent(ctx context.Context, d Draft) Content {
	if d.Content != "" {
		return d.Content
	}
	if s.suggester != nil && d.Description != "" {
		if c, err := s.suggester.SuggestContent(ctx, d.Description); err == nil && c != "" {
			return c
		} else if err != nil {
			s.log.Warn("content suggestion failed", zap.Error(err))
		}
	}
	return ContentStandard
}

func newTrackingNumber() string {
	return fmt.Sprintf("TRK-%d", 100000+rand.Intn(900000))
}
