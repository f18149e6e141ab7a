package parcel

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"packpal/internal/modules/notification"
	"packpal/internal/types"
)

type fakeStore struct {
	created []*Package
	err     error
}

func (f *fakeStore) Create(_ context.Context, p *Package) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, p)
	return nil
}

func (f *fakeStore) Get(_ context.Context, id types.ID) (*Package, error) {
	for _, p := range f.created {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) ListPending(_ context.Context, _ int) ([]*Package, error) {
	return f.created, nil
}

type fakeGeocoder struct {
	pos types.Point
	err error
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (types.Point, error) {
	return f.pos, f.err
}

type fakeIndex struct {
	indexed []types.ID
	err     error
}

func (f *fakeIndex) IndexPending(_ context.Context, id types.ID, _ types.Point) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, id)
	return nil
}

type fakeNotifier struct {
	sent []notification.Notification
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, n notification.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func validDraft() Draft {
	return Draft{
		Type:        "electronics",
		WeightLabel: "Light (1-5 kg)",
		Size:        SizeSmall,
		Content:     ContentStandard,
		Description: "a small camera",
		Pickup: Location{
			Address:  "1 MG Road, Bengaluru",
			Position: types.Point{Lat: 12.9716, Lng: 77.5946},
			City:     "Bengaluru",
			State:    "Karnataka",
		},
		Delivery: Location{
			Address:  "2 Mount Road, Chennai",
			Position: types.Point{Lat: 13.0827, Lng: 80.2707},
			City:     "Chennai",
			State:    "Tamil Nadu",
		},
		Receiver: Receiver{Name: "Asha", Phone: "+919800000000"},
	}
}

func TestSubmit_HappyPath(t *testing.T) {
	store := &fakeStore{}
	index := &fakeIndex{}
	notifier := &fakeNotifier{}
	svc := NewService(store, nil, nil, index, notifier, zap.NewNop())

	p, err := svc.Submit(context.Background(), "sender1", validDraft())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if p.Status != StatusPending {
		t.Errorf("status = %s, want pending", p.Status)
	}
	if p.ID.IsZero() {
		t.Error("expected generated package id")
	}
	if !strings.HasPrefix(p.TrackingNumber, "TRK-") || len(p.TrackingNumber) != 10 {
		t.Errorf("unexpected tracking number %q", p.TrackingNumber)
	}
	if p.TravelerID != nil || p.Price != nil {
		t.Error("traveler and price must be unset until matched")
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 stored package, got %d", len(store.created))
	}
	if len(index.indexed) != 1 || index.indexed[0] != p.ID {
		t.Errorf("expected package indexed for browsing, got %v", index.indexed)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 confirmation notification, got %d", len(notifier.sent))
	}
	if notifier.sent[0].RecipientID != "sender1" {
		t.Errorf("confirmation addressed to %s, want sender1", notifier.sent[0].RecipientID)
	}
}

func TestSubmit_IncompleteDraft(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil, nil, nil, nil, zap.NewNop())

	d := validDraft()
	d.Receiver.Phone = ""
	if _, err := svc.Submit(context.Background(), "sender1", d); !errors.Is(err, ErrIncompleteDraft) {
		t.Fatalf("expected ErrIncompleteDraft, got %v", err)
	}
	if len(store.created) != 0 {
		t.Error("incomplete draft must not be persisted")
	}
}

func TestSubmit_GeocodesMissingCoordinates(t *testing.T) {
	store := &fakeStore{}
	geo := &fakeGeocoder{pos: types.Point{Lat: 12.9716, Lng: 77.5946}}
	svc := NewService(store, geo, nil, nil, nil, zap.NewNop())

	d := validDraft()
	d.Pickup.Position = types.Point{}
	p, err := svc.Submit(context.Background(), "sender1", d)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if p.Pickup.Position != geo.pos {
		t.Errorf("pickup position = %v, want geocoded %v", p.Pickup.Position, geo.pos)
	}
	// delivery already had coordinates; geocoder must not overwrite them
	if p.Delivery.Position != d.Delivery.Position {
		t.Errorf("delivery position changed: %v", p.Delivery.Position)
	}
}

func TestSubmit_GeocoderFailureKeepsZeroCoordinates(t *testing.T) {
	store := &fakeStore{}
	geo := &fakeGeocoder{err: errors.New("quota exceeded")}
	svc := NewService(store, geo, nil, nil, nil, zap.NewNop())

	d := validDraft()
	d.Pickup.Position = types.Point{}
	p, err := svc.Submit(context.Background(), "sender1", d)
	if err != nil {
		t.Fatalf("geocoder failure must not fail submission: %v", err)
	}
	if p.Pickup.Position != (types.Point{}) {
		t.Errorf("expected zero pickup position, got %v", p.Pickup.Position)
	}
}

func TestSubmit_EmptyContentDefaultsToStandard(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil, nil, nil, nil, zap.NewNop())

	d := validDraft()
	d.Content = ""
	d.Description = ""
	p, err := svc.Submit(context.Background(), "sender1", d)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if p.Content != ContentStandard {
		t.Errorf("content = %s, want standard", p.Content)
	}
}

func TestSubmit_SideEffectFailuresDoNotFailSubmission(t *testing.T) {
	store := &fakeStore{}
	index := &fakeIndex{err: errors.New("redis down")}
	notifier := &fakeNotifier{err: errors.New("notifications down")}
	svc := NewService(store, nil, nil, index, notifier, zap.NewNop())

	if _, err := svc.Submit(context.Background(), "sender1", validDraft()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(store.created) != 1 {
		t.Errorf("package must persist despite side-effect failures")
	}
}

func TestSubmit_StoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("insert failed")}
	notifier := &fakeNotifier{}
	svc := NewService(store, nil, nil, nil, notifier, zap.NewNop())

	if _, err := svc.Submit(context.Background(), "sender1", validDraft()); err == nil {
		t.Fatal("expected store error to surface")
	}
	if len(notifier.sent) != 0 {
		t.Error("no notification should be sent when the insert fails")
	}
}
