// README: User store backed by PostgreSQL.
package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"packpal/internal/types"
)

var ErrNotFound = errors.New("user not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, id types.ID) (*User, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, first_name, last_name, email, push_tokens, created_at
        FROM users WHERE id = $1`, string(id),
	)
	var u User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PushTokens, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert mirrors the identity provider's profile on first sign-in.
func (s *Store) Upsert(ctx context.Context, u *User) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO users (id, first_name, last_name, email, push_tokens, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE
        SET first_name = EXCLUDED.first_name,
            last_name  = EXCLUDED.last_name,
            email      = EXCLUDED.email`,
		string(u.ID), u.FirstName, u.LastName, u.Email, u.PushTokens, u.CreatedAt,
	)
	return err
}

// PushTokens returns the user's registered device tokens. A missing user
// yields an empty list, not an error: senders of historical packages may
// never have signed in on this backend.
func (s *Store) PushTokens(ctx context.Context, id types.ID) ([]string, error) {
	row := s.db.QueryRow(ctx, `SELECT push_tokens FROM users WHERE id = $1`, string(id))
	var tokens []string
	err := row.Scan(&tokens)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// AddPushToken registers a device token, ignoring duplicates.
func (s *Store) AddPushToken(ctx context.Context, id types.ID, token string) error {
	_, err := s.db.Exec(ctx, `
        UPDATE users
        SET push_tokens = array_append(push_tokens, $1)
        WHERE id = $2 AND NOT ($1 = ANY(push_tokens))`,
		token, string(id),
	)
	return err
}
