package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LocationsRepo interface {
	List(ctx context.Context) ([]domain.Location, error)
	Get(ctx context.Context, id int64) (*domain.Location, error)
	Create(ctx context.Context, in *domain.CreateLocationReq) (*domain.Location, error)
	Update(ctx context.Context, id int64, in *domain.UpdateLocationReq) (*domain.Location, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type LocationsRepoImpl struct{ pool *pgxpool.Pool }

func NewLocationsRepo(pool *pgxpool.Pool) *LocationsRepoImpl { return &LocationsRepoImpl{pool: pool} }

const locationCols = `location_id, location_name, address, contact_number`

func scanLocation(row pgx.Row) (*domain.Location, error) {
	var l domain.Location
	if err := row.Scan(&l.ID, &l.LocationName, &l.Address, &l.ContactNumber); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationsRepoImpl) List(ctx context.Context) ([]domain.Location, error) {
	const q = `SELECT ` + locationCols + ` FROM locations ORDER BY location_id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (r *LocationsRepoImpl) Get(ctx context.Context, id int64) (*domain.Location, error) {
	const q = `SELECT ` + locationCols + ` FROM locations WHERE location_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	l, err := scanLocation(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

func (r *LocationsRepoImpl) Create(ctx context.Context, in *domain.CreateLocationReq) (*domain.Location, error) {
	const q = `
INSERT INTO locations (location_name, address, contact_number)
VALUES ($1,$2,$3)
RETURNING ` + locationCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	l, err := scanLocation(r.pool.QueryRow(ctx, q, in.LocationName, in.Address, in.ContactNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

func (r *LocationsRepoImpl) Update(ctx context.Context, id int64, in *domain.UpdateLocationReq) (*domain.Location, error) {
	const q = `
UPDATE locations SET
  location_name  = COALESCE($2, location_name),
  address        = COALESCE($3, address),
  contact_number = COALESCE($4, contact_number),
  updated_at     = now()
WHERE location_id=$1
RETURNING ` + locationCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	l, err := scanLocation(r.pool.QueryRow(ctx, q, id, in.LocationName, in.Address, in.ContactNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

func (r *LocationsRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE location_id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ LocationsRepo = (*LocationsRepoImpl)(nil)
