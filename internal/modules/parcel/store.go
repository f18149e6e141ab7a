// README: Package store backed by PostgreSQL.
package parcel

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"packpal/internal/types"
)

var ErrNotFound = errors.New("package not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, p *Package) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO packages (
            id, sender_id, tracking_number, status,
            type, weight_label, size, content, description,
            pickup_address, pickup_lat, pickup_lng, pickup_city, pickup_state, pickup_zip,
            delivery_address, delivery_lat, delivery_lng, delivery_city, delivery_state, delivery_zip,
            receiver_name, receiver_phone, receiver_email, receiver_alt_phone,
            created_at
        ) VALUES (
            $1, $2, $3, $4,
            $5, $6, $7, $8, $9,
            $10, $11, $12, $13, $14, $15,
            $16, $17, $18, $19, $20, $21,
            $22, $23, $24, $25,
            $26
        )`,
		string(p.ID), string(p.SenderID), p.TrackingNumber, string(p.Status),
		p.Type, p.WeightLabel, string(p.Size), string(p.Content), p.Description,
		p.Pickup.Address, p.Pickup.Position.Lat, p.Pickup.Position.Lng, p.Pickup.City, p.Pickup.State, p.Pickup.ZipCode,
		p.Delivery.Address, p.Delivery.Position.Lat, p.Delivery.Position.Lng, p.Delivery.City, p.Delivery.State, p.Delivery.ZipCode,
		p.Receiver.Name, p.Receiver.Phone, p.Receiver.Email, p.Receiver.AltPhone,
		p.CreatedAt,
	)
	return err
}

const packageColumns = `
        id, sender_id, tracking_number, status,
        type, weight_label, size, content, description,
        pickup_address, pickup_lat, pickup_lng, pickup_city, pickup_state, pickup_zip,
        delivery_address, delivery_lat, delivery_lng, delivery_city, delivery_state, delivery_zip,
        receiver_name, receiver_phone, receiver_email, receiver_alt_phone,
        traveler_id, price, price_currency, created_at`

func (s *Store) Get(ctx context.Context, id types.ID) (*Package, error) {
	row := s.db.QueryRow(ctx, `SELECT`+packageColumns+` FROM packages WHERE id = $1`, string(id))
	p, err := scanPackage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPending returns pending packages newest first, for travelers browsing
// without a location filter.
func (s *Store) ListPending(ctx context.Context, limit int) ([]*Package, error) {
	rows, err := s.db.Query(ctx, `
        SELECT`+packageColumns+`
        FROM packages
        WHERE status = $1
        ORDER BY created_at DESC
        LIMIT $2`, string(StatusPending), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPackages(rows)
}

// GetMany returns the subset of the given ids that still exist, preserving
// no particular order.
func (s *Store) GetMany(ctx context.Context, ids []types.ID) ([]*Package, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = string(id)
	}
	rows, err := s.db.Query(ctx, `SELECT`+packageColumns+` FROM packages WHERE id = ANY($1)`, raw)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPackages(rows)
}

// AssignTraveler attaches the traveler and agreed price and moves the
// package from `from` to in_progress in a single conditional write. The
// status predicate is the optimistic-concurrency guard: of two racing
// travelers, exactly one observes RowsAffected == 1.
func (s *Store) AssignTraveler(ctx context.Context, id, travelerID types.ID, price types.Money, from Status) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE packages
        SET status = $1,
            traveler_id = $2,
            price = $3,
            price_currency = $4
        WHERE id = $5 AND status = $6`,
		string(StatusInProgress),
		string(travelerID),
		price.Amount,
		price.Currency,
		string(id),
		string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateStatus performs a guarded forward transition (delivery, cancel).
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE packages SET status = $1 WHERE id = $2 AND status = $3`,
		string(to), string(id), string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanPackages(rows pgx.Rows) ([]*Package, error) {
	var out []*Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPackage(row pgx.Row) (*Package, error) {
	var p Package
	var travelerID sql.NullString
	var price sql.NullInt64
	var priceCurrency sql.NullString

	err := row.Scan(
		&p.ID, &p.SenderID, &p.TrackingNumber, &p.Status,
		&p.Type, &p.WeightLabel, &p.Size, &p.Content, &p.Description,
		&p.Pickup.Address, &p.Pickup.Position.Lat, &p.Pickup.Position.Lng, &p.Pickup.City, &p.Pickup.State, &p.Pickup.ZipCode,
		&p.Delivery.Address, &p.Delivery.Position.Lat, &p.Delivery.Position.Lng, &p.Delivery.City, &p.Delivery.State, &p.Delivery.ZipCode,
		&p.Receiver.Name, &p.Receiver.Phone, &p.Receiver.Email, &p.Receiver.AltPhone,
		&travelerID, &price, &priceCurrency,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if travelerID.Valid {
		id := types.ID(travelerID.String)
		p.TravelerID = &id
	}
	if price.Valid {
		m := types.Money{Amount: price.Int64, Currency: types.CurrencyINR}
		if priceCurrency.Valid {
			m.Currency = priceCurrency.String
		}
		p.Price = &m
	}
	return &p, nil
}
