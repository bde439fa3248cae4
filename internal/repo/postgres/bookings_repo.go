package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingsRepo interface {
	List(ctx context.Context) ([]domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error)
	Get(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, in *domain.CreateBookingReq) (*domain.Booking, error)
	Update(ctx context.Context, id int64, in *domain.UpdateBookingReq) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type BookingsRepoImpl struct{ pool *pgxpool.Pool }

func NewBookingsRepo(pool *pgxpool.Pool) *BookingsRepoImpl { return &BookingsRepoImpl{pool: pool} }

const bookingCols = `booking_id, car_id, customer_id, rental_start_date, rental_end_date, total_amount`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.CarID, &b.CustomerID, &b.RentalStartDate, &b.RentalEndDate, &b.TotalAmount); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingsRepoImpl) query(ctx context.Context, q string, args ...any) ([]domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *BookingsRepoImpl) List(ctx context.Context) ([]domain.Booking, error) {
	return r.query(ctx, `SELECT `+bookingCols+` FROM bookings ORDER BY booking_id`)
}

func (r *BookingsRepoImpl) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	return r.query(ctx, `SELECT `+bookingCols+` FROM bookings WHERE customer_id=$1 ORDER BY booking_id`, customerID)
}

func (r *BookingsRepoImpl) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE booking_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	b, err := scanBooking(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *BookingsRepoImpl) Create(ctx context.Context, in *domain.CreateBookingReq) (*domain.Booking, error) {
	const q = `
INSERT INTO bookings (car_id, customer_id, rental_start_date, rental_end_date, total_amount)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + bookingCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	b, err := scanBooking(r.pool.QueryRow(ctx, q,
		in.CarID, in.CustomerID, in.RentalStartDate, in.RentalEndDate, in.TotalAmount,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *BookingsRepoImpl) Update(ctx context.Context, id int64, in *domain.UpdateBookingReq) (*domain.Booking, error) {
	const q = `
UPDATE bookings SET
  car_id            = COALESCE($2, car_id),
  customer_id       = COALESCE($3, customer_id),
  rental_start_date = COALESCE($4, rental_start_date),
  rental_end_date   = COALESCE($5, rental_end_date),
  total_amount      = COALESCE($6, total_amount),
  updated_at        = now()
WHERE booking_id=$1
RETURNING ` + bookingCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	b, err := scanBooking(r.pool.QueryRow(ctx, q, id,
		in.CarID, in.CustomerID, in.RentalStartDate, in.RentalEndDate, in.TotalAmount,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *BookingsRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE booking_id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ BookingsRepo = (*BookingsRepoImpl)(nil)
