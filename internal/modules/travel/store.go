// README: Travel store backed by PostgreSQL.
package travel

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"packpal/internal/types"
)

var ErrNotFound = errors.New("travel not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, t *Travel) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO travels (
            id, traveler_id, package_id,
            start_address, start_lat, start_lng, start_city, start_state, start_zip,
            dest_address, dest_lat, dest_lng, dest_city, dest_state, dest_zip,
            medium, tracking_number, price, price_currency, notes, status, created_at
        ) VALUES (
            $1, $2, $3,
            $4, $5, $6, $7, $8, $9,
            $10, $11, $12, $13, $14, $15,
            $16, $17, $18, $19, $20, $21, $22
        )`,
		string(t.ID), string(t.TravelerID), string(t.PackageID),
		t.Start.Address, t.Start.Position.Lat, t.Start.Position.Lng, t.Start.City, t.Start.State, t.Start.ZipCode,
		t.Destination.Address, t.Destination.Position.Lat, t.Destination.Position.Lng, t.Destination.City, t.Destination.State, t.Destination.ZipCode,
		string(t.Medium), t.TrackingNumber, t.Price.Amount, t.Price.Currency, t.Notes, string(t.Status), t.CreatedAt,
	)
	return err
}

const travelColumns = `
        id, traveler_id, package_id,
        start_address, start_lat, start_lng, start_city, start_state, start_zip,
        dest_address, dest_lat, dest_lng, dest_city, dest_state, dest_zip,
        medium, tracking_number, price, price_currency, notes, status, created_at`

func (s *Store) Get(ctx context.Context, id types.ID) (*Travel, error) {
	row := s.db.QueryRow(ctx, `SELECT`+travelColumns+` FROM travels WHERE id = $1`, string(id))
	t, err := scanTravel(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) ListByTraveler(ctx context.Context, travelerID types.ID, limit int) ([]*Travel, error) {
	rows, err := s.db.Query(ctx, `
        SELECT`+travelColumns+`
        FROM travels
        WHERE traveler_id = $1
        ORDER BY created_at DESC
        LIMIT $2`, string(travelerID), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Travel
	for rows.Next() {
		t, err := scanTravel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateStatus performs a guarded transition keyed on the expected prior
// status.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE travels SET status = $1 WHERE id = $2 AND status = $3`,
		string(to), string(id), string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanTravel(row pgx.Row) (*Travel, error) {
	var t Travel
	err := row.Scan(
		&t.ID, &t.TravelerID, &t.PackageID,
		&t.Start.Address, &t.Start.Position.Lat, &t.Start.Position.Lng, &t.Start.City, &t.Start.State, &t.Start.ZipCode,
		&t.Destination.Address, &t.Destination.Position.Lat, &t.Destination.Position.Lng, &t.Destination.City, &t.Destination.State, &t.Destination.ZipCode,
		&t.Medium, &t.TrackingNumber, &t.Price.Amount, &t.Price.Currency, &t.Notes, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
