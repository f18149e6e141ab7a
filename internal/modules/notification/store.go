// README: Notification store backed by PostgreSQL.
package notification

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"packpal/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, n *Notification) error {
	payload, err := json.Marshal(n.Data)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
        INSERT INTO notifications (id, recipient_id, title, body, data, created_at, read)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(n.ID), string(n.RecipientID), n.Title, n.Body, payload, n.CreatedAt, n.Read,
	)
	return err
}

func (s *Store) ListByRecipient(ctx context.Context, recipientID types.ID, limit int) ([]*Notification, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, recipient_id, title, body, data, created_at, read
        FROM notifications
        WHERE recipient_id = $1
        ORDER BY created_at DESC
        LIMIT $2`, string(recipientID), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flips the read flag; the recipient predicate stops users from
// acknowledging someone else's notifications.
func (s *Store) MarkRead(ctx context.Context, id, recipientID types.ID) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_id = $2`,
		string(id), string(recipientID),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	var payload []byte
	if err := row.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Body, &payload, &n.CreatedAt, &n.Read); err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &n.Data); err != nil {
			return nil, err
		}
	}
	return &n, nil
}
