// README: Travel service; guarded lifecycle transitions after acceptance.
package travel

import (
	"context"
	"errors"

	"packpal/internal/types"
)

var (
	ErrInvalidState = errors.New("invalid travel state transition")
	ErrConflict     = errors.New("travel state conflict")
)

// TravelStore is the persistence boundary; *Store is the Postgres
// implementation.
type TravelStore interface {
	Create(ctx context.Context, t *Travel) error
	Get(ctx context.Context, id types.ID) (*Travel, error)
	ListByTraveler(ctx context.Context, travelerID types.ID, limit int) ([]*Travel, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error)
}

type Service struct {
	store TravelStore
}

func NewService(store TravelStore) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Travel, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByTraveler(ctx context.Context, travelerID types.ID, limit int) ([]*Travel, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.store.ListByTraveler(ctx, travelerID, limit)
}

// Advance moves a travel to the requested status. The conditional write
// keyed on the current status turns a lost race into ErrConflict instead of
// a silent double transition.
func (s *Service) Advance(ctx context.Context, id types.ID, to Status) error {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(t.Status, to) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, id, t.Status, to)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}
