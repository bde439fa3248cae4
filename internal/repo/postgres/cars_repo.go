package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CarsRepo interface {
	List(ctx context.Context) ([]domain.Car, error)
	Get(ctx context.Context, id int64) (*domain.Car, error)
	Create(ctx context.Context, in *domain.CreateCarReq) (*domain.Car, error)
	Update(ctx context.Context, id int64, in *domain.UpdateCarReq) (*domain.Car, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CarsRepoImpl struct{ pool *pgxpool.Pool }

func NewCarsRepo(pool *pgxpool.Pool) *CarsRepoImpl { return &CarsRepoImpl{pool: pool} }

const carCols = `car_id, car_model, year, COALESCE(color, ''), rental_rate, availability, location_id`

func scanCar(row pgx.Row) (*domain.Car, error) {
	var c domain.Car
	if err := row.Scan(&c.ID, &c.CarModel, &c.Year, &c.Color, &c.RentalRate, &c.Availability, &c.LocationID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CarsRepoImpl) List(ctx context.Context) ([]domain.Car, error) {
	const q = `SELECT ` + carCols + ` FROM cars ORDER BY car_id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Car, 0)
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CarsRepoImpl) Get(ctx context.Context, id int64) (*domain.Car, error) {
	const q = `SELECT ` + carCols + ` FROM cars WHERE car_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	c, err := scanCar(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *CarsRepoImpl) Create(ctx context.Context, in *domain.CreateCarReq) (*domain.Car, error) {
	const q = `
INSERT INTO cars (car_model, year, color, rental_rate, availability, location_id)
VALUES ($1,$2,NULLIF($3,''),$4,COALESCE($5,true),$6)
RETURNING ` + carCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	c, err := scanCar(r.pool.QueryRow(ctx, q,
		in.CarModel, in.Year, in.Color, in.RentalRate, in.Availability, in.LocationID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *CarsRepoImpl) Update(ctx context.Context, id int64, in *domain.UpdateCarReq) (*domain.Car, error) {
	const q = `
UPDATE cars SET
  car_model    = COALESCE($2, car_model),
  year         = COALESCE($3, year),
  color        = COALESCE($4, color),
  rental_rate  = COALESCE($5, rental_rate),
  availability = COALESCE($6, availability),
  location_id  = COALESCE($7, location_id),
  updated_at   = now()
WHERE car_id=$1
RETURNING ` + carCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	c, err := scanCar(r.pool.QueryRow(ctx, q, id,
		in.CarModel, in.Year, in.Color, in.RentalRate, in.Availability, in.LocationID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *CarsRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, `DELETE FROM cars WHERE car_id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ CarsRepo = (*CarsRepoImpl)(nil)
