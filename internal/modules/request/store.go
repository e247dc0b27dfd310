// README: Pickup request store backed by PostgreSQL.
package request

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campusride/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, r *Request) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO pickup_requests (
			id, name, contact, status, status_version,
			pickup_lat, pickup_lng, destination_lat, destination_lng,
			created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10
		)`,
		string(r.ID),
		r.Name,
		r.Contact,
		string(r.Status),
		r.StatusVersion,
		r.Pickup.Lat, r.Pickup.Lng,
		r.Destination.Lat, r.Destination.Lng,
		r.CreatedAt,
	)
	return err
}

const selectColumns = `
	SELECT id, name, contact, status, status_version,
	       pickup_lat, pickup_lng, destination_lat, destination_lng,
	       created_at, cancelled_at
	FROM pickup_requests`

func (s *Store) Get(ctx context.Context, id types.ID) (*Request, error) {
	row := s.db.QueryRow(ctx, selectColumns+` WHERE id = $1`, string(id))
	r, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

// ListByStatus returns requests in creation order.
func (s *Store) ListByStatus(ctx context.Context, status Status) ([]*Request, error) {
	rows, err := s.db.Query(ctx, selectColumns+` WHERE status = $1 ORDER BY created_at, id`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateStatus applies the transition only if the row still has the expected
// status and version; it reports whether a row was updated.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE pickup_requests
		SET status = $1,
		    status_version = status_version + 1,
		    cancelled_at = CASE WHEN $1 = 'cancelled' THEN NOW() ELSE cancelled_at END
		WHERE id = $2 AND status = $3 AND status_version = $4`,
		string(to),
		string(id),
		string(from),
		version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanRequest(row pgx.Row) (*Request, error) {
	var r Request
	var cancelledAt *time.Time
	err := row.Scan(
		&r.ID, &r.Name, &r.Contact, &r.Status, &r.StatusVersion,
		&r.Pickup.Lat, &r.Pickup.Lng, &r.Destination.Lat, &r.Destination.Lng,
		&r.CreatedAt, &cancelledAt,
	)
	if err != nil {
		return nil, err
	}
	r.CancelledAt = cancelledAt
	return &r, nil
}
