package notification

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"packpal/internal/types"
)

type fakeNotificationStore struct {
	created []*Notification
	err     error
}

func (f *fakeNotificationStore) Create(_ context.Context, n *Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationStore) ListByRecipient(_ context.Context, recipientID types.ID, _ int) ([]*Notification, error) {
	var out []*Notification
	for _, n := range f.created {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, id, recipientID types.ID) (bool, error) {
	for _, n := range f.created {
		if n.ID == id && n.RecipientID == recipientID {
			n.Read = true
			return true, nil
		}
	}
	return false, nil
}

type fakeTokens struct {
	tokens map[types.ID][]string
	err    error
}

func (f *fakeTokens) PushTokens(_ context.Context, id types.ID) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens[id], nil
}

type fakePusher struct {
	pushed []string
	err    error
}

func (f *fakePusher) Push(_ context.Context, token, _, _ string, _ map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.pushed = append(f.pushed, token)
	return nil
}

func TestSend_PersistsAndRelaysToEveryDevice(t *testing.T) {
	store := &fakeNotificationStore{}
	tokens := &fakeTokens{tokens: map[types.ID][]string{"sender1": {"tok-a", "tok-b"}}}
	pusher := &fakePusher{}
	svc := NewService(store, tokens, pusher, zap.NewNop())

	err := svc.Send(context.Background(), Notification{
		RecipientID: "sender1",
		Title:       "Package Accepted by Traveler",
		Body:        "Your package (TRK-482913) has been accepted and is now in progress.",
		Data:        map[string]string{"tracking_number": "TRK-482913"},
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected 1 persisted notification, got %d", len(store.created))
	}
	n := store.created[0]
	if n.ID.IsZero() || n.CreatedAt.IsZero() {
		t.Error("id and created_at should be filled before persistence")
	}
	if n.Read {
		t.Error("read flag must default to false")
	}
	if len(pusher.pushed) != 2 {
		t.Fatalf("expected push to both devices, got %v", pusher.pushed)
	}
}

func TestSend_NoTokensSkipsRelay(t *testing.T) {
	store := &fakeNotificationStore{}
	pusher := &fakePusher{}
	svc := NewService(store, &fakeTokens{}, pusher, zap.NewNop())

	if err := svc.Send(context.Background(), Notification{RecipientID: "sender1", Title: "t"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(store.created) != 1 {
		t.Error("notification must persist even with no devices")
	}
	if len(pusher.pushed) != 0 {
		t.Error("no push should be attempted without tokens")
	}
}

func TestSend_RelayFailureIsSwallowed(t *testing.T) {
	store := &fakeNotificationStore{}
	tokens := &fakeTokens{tokens: map[types.ID][]string{"sender1": {"tok-a"}}}
	pusher := &fakePusher{err: errors.New("fcm unavailable")}
	svc := NewService(store, tokens, pusher, zap.NewNop())

	if err := svc.Send(context.Background(), Notification{RecipientID: "sender1", Title: "t"}); err != nil {
		t.Fatalf("relay failure must not surface: %v", err)
	}
	if len(store.created) != 1 {
		t.Error("notification must persist despite relay failure")
	}
}

func TestSend_TokenLookupFailureIsSwallowed(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewService(store, &fakeTokens{err: errors.New("db down")}, &fakePusher{}, zap.NewNop())

	if err := svc.Send(context.Background(), Notification{RecipientID: "sender1", Title: "t"}); err != nil {
		t.Fatalf("token lookup failure must not surface: %v", err)
	}
}

func TestSend_PersistFailureSurfaces(t *testing.T) {
	store := &fakeNotificationStore{err: errors.New("insert failed")}
	pusher := &fakePusher{}
	svc := NewService(store, &fakeTokens{tokens: map[types.ID][]string{"sender1": {"tok"}}}, pusher, zap.NewNop())

	if err := svc.Send(context.Background(), Notification{RecipientID: "sender1", Title: "t"}); err == nil {
		t.Fatal("expected persistence failure to surface to the caller")
	}
	if len(pusher.pushed) != 0 {
		t.Error("no push should be attempted when persistence fails")
	}
}

func TestMarkRead_WrongRecipient(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewService(store, &fakeTokens{}, nil, zap.NewNop())

	_ = svc.Send(context.Background(), Notification{RecipientID: "sender1", Title: "t"})
	id := store.created[0].ID

	ok, err := svc.MarkRead(context.Background(), id, "someone-else")
	if err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if ok {
		t.Error("a stranger must not be able to acknowledge the notification")
	}

	ok, err = svc.MarkRead(context.Background(), id, "sender1")
	if err != nil || !ok {
		t.Fatalf("owner MarkRead = %v, %v; want true, nil", ok, err)
	}
}
