package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationsRepo interface {
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByCar(ctx context.Context, carID int64) ([]domain.Reservation, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Reservation, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	Create(ctx context.Context, in *domain.CreateReservationReq) (*domain.Reservation, error)
	Update(ctx context.Context, id int64, in *domain.UpdateReservationReq) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type ReservationsRepoImpl struct{ pool *pgxpool.Pool }

func NewReservationsRepo(pool *pgxpool.Pool) *ReservationsRepoImpl {
	return &ReservationsRepoImpl{pool: pool}
}

const reservationCols = `reservation_id, customer_id, car_id, reservation_date, pickup_date, return_date, status`

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var rv domain.Reservation
	if err := row.Scan(
		&rv.ID, &rv.CustomerID, &rv.CarID, &rv.ReservationDate, &rv.PickupDate, &rv.ReturnDate, &rv.Status,
	); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReservationsRepoImpl) query(ctx context.Context, q string, args ...any) ([]domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Reservation, 0)
	for rows.Next() {
		rv, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rv)
	}
	return out, rows.Err()
}

func (r *ReservationsRepoImpl) List(ctx context.Context) ([]domain.Reservation, error) {
	return r.query(ctx, `SELECT `+reservationCols+` FROM reservations ORDER BY reservation_id`)
}

func (r *ReservationsRepoImpl) ListByCar(ctx context.Context, carID int64) ([]domain.Reservation, error) {
	return r.query(ctx, `SELECT `+reservationCols+` FROM reservations WHERE car_id=$1 ORDER BY reservation_id`, carID)
}

func (r *ReservationsRepoImpl) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Reservation, error) {
	return r.query(ctx, `SELECT `+reservationCols+` FROM reservations WHERE customer_id=$1 ORDER BY reservation_id`, customerID)
}

func (r *ReservationsRepoImpl) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE reservation_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rv, err := scanReservation(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rv, err
}

func (r *ReservationsRepoImpl) Create(ctx context.Context, in *domain.CreateReservationReq) (*domain.Reservation, error) {
	const q = `
INSERT INTO reservations (customer_id, car_id, reservation_date, pickup_date, return_date, status)
VALUES ($1,$2,$3,$4,$5,COALESCE(NULLIF($6,''),'pending'))
RETURNING ` + reservationCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rv, err := scanReservation(r.pool.QueryRow(ctx, q,
		in.CustomerID, in.CarID, in.ReservationDate, in.PickupDate, in.ReturnDate, string(in.Status),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rv, err
}

func (r *ReservationsRepoImpl) Update(ctx context.Context, id int64, in *domain.UpdateReservationReq) (*domain.Reservation, error) {
	const q = `
UPDATE reservations SET
  customer_id      = COALESCE($2, customer_id),
  car_id           = COALESCE($3, car_id),
  reservation_date = COALESCE($4, reservation_date),
  pickup_date      = COALESCE($5, pickup_date),
  return_date      = COALESCE($6, return_date),
  status           = COALESCE($7, status),
  updated_at       = now()
WHERE reservation_id=$1
RETURNING ` + reservationCols
	var status *string
	if in.Status != nil {
		s := string(*in.Status)
		status = &s
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rv, err := scanReservation(r.pool.QueryRow(ctx, q, id,
		in.CustomerID, in.CarID, in.ReservationDate, in.PickupDate, in.ReturnDate, status,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rv, err
}

func (r *ReservationsRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, `DELETE FROM reservations WHERE reservation_id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ ReservationsRepo = (*ReservationsRepoImpl)(nil)
