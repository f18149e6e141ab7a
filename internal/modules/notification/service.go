// README: Notification service; persists the record, then relays push best-effort.
package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"packpal/internal/types"
)

// NotificationStore is the persistence boundary; *Store is the Postgres
// implementation.
type NotificationStore interface {
	Create(ctx context.Context, n *Notification) error
	ListByRecipient(ctx context.Context, recipientID types.ID, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, id, recipientID types.ID) (bool, error)
}

// TokenSource resolves a recipient's registered push-device tokens.
type TokenSource interface {
	PushTokens(ctx context.Context, id types.ID) ([]string, error)
}

type Service struct {
	store  NotificationStore
	tokens TokenSource
	pusher Pusher
	log    *zap.Logger
}

func NewService(store NotificationStore, tokens TokenSource, pusher Pusher, log *zap.Logger) *Service {
	return &Service{store: store, tokens: tokens, pusher: pusher, log: log}
}

// Send persists the notification and relays it to every registered device
// of the recipient. Persistence failure is returned to the caller; relay and
// token-lookup failures are logged and swallowed so a dead push channel
// never aborts the calling workflow.
func (s *Service) Send(ctx context.Context, n Notification) error {
	if n.ID.IsZero() {
		n.ID = types.ID(uuid.NewString())
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := s.store.Create(ctx, &n); err != nil {
		return err
	}

	tokens, err := s.tokens.PushTokens(ctx, n.RecipientID)
	if err != nil {
		s.log.Warn("push token lookup failed",
			zap.String("recipient_id", string(n.RecipientID)),
			zap.Error(err))
		return nil
	}
	if len(tokens) == 0 {
		s.log.Info("recipient has no push tokens registered",
			zap.String("recipient_id", string(n.RecipientID)))
		return nil
	}
	if s.pusher == nil {
		return nil
	}

	for _, token := range tokens {
		if err := s.pusher.Push(ctx, token, n.Title, n.Body, n.Data); err != nil {
			s.log.Warn("push relay failed",
				zap.String("recipient_id", string(n.RecipientID)),
				zap.Error(err))
		}
	}
	return nil
}

func (s *Service) ListByRecipient(ctx context.Context, recipientID types.ID, limit int) ([]*Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.store.ListByRecipient(ctx, recipientID, limit)
}

func (s *Service) MarkRead(ctx context.Context, id, recipientID types.ID) (bool, error) {
	return s.store.MarkRead(ctx, id, recipientID)
}
