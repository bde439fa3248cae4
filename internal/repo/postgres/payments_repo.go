package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentsRepo interface {
	List(ctx context.Context) ([]domain.Payment, error)
	ListByBookings(ctx context.Context, bookingIDs []int64) ([]domain.Payment, error)
	Get(ctx context.Context, id int64) (*domain.Payment, error)
	Create(ctx context.Context, in *domain.CreatePaymentReq) (*domain.Payment, error)
	Update(ctx context.Context, id int64, in *domain.UpdatePaymentReq) (*domain.Payment, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type PaymentsRepoImpl struct{ pool *pgxpool.Pool }

func NewPaymentsRepo(pool *pgxpool.Pool) *PaymentsRepoImpl { return &PaymentsRepoImpl{pool: pool} }

const paymentCols = `payment_id, booking_id, payment_date, amount, payment_method, transaction_id`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	if err := row.Scan(&p.ID, &p.BookingID, &p.PaymentDate, &p.Amount, &p.PaymentMethod, &p.TransactionID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentsRepoImpl) query(ctx context.Context, q string, args ...any) ([]domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PaymentsRepoImpl) List(ctx context.Context) ([]domain.Payment, error) {
	return r.query(ctx, `SELECT `+paymentCols+` FROM payments ORDER BY payment_id`)
}

func (r *PaymentsRepoImpl) ListByBookings(ctx context.Context, bookingIDs []int64) ([]domain.Payment, error) {
	if len(bookingIDs) == 0 {
		return []domain.Payment{}, nil
	}
	return r.query(ctx, `SELECT `+paymentCols+` FROM payments WHERE booking_id = ANY($1) ORDER BY payment_id`, bookingIDs)
}

func (r *PaymentsRepoImpl) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	const q = `SELECT ` + paymentCols + ` FROM payments WHERE payment_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	p, err := scanPayment(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *PaymentsRepoImpl) Create(ctx context.Context, in *domain.CreatePaymentReq) (*domain.Payment, error) {
	const q = `
INSERT INTO payments (booking_id, payment_date, amount, payment_method, transaction_id)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + paymentCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	p, err := scanPayment(r.pool.QueryRow(ctx, q,
		in.BookingID, in.PaymentDate, in.Amount, in.PaymentMethod, in.TransactionID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *PaymentsRepoImpl) Update(ctx context.Context, id int64, in *domain.UpdatePaymentReq) (*domain.Payment, error) {
	const q = `
UPDATE payments SET
  booking_id     = COALESCE($2, booking_id),
  payment_date   = COALESCE($3, payment_date),
  amount         = COALESCE($4, amount),
  payment_method = COALESCE($5, payment_method),
  updated_at     = now()
WHERE payment_id=$1
RETURNING ` + paymentCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	p, err := scanPayment(r.pool.QueryRow(ctx, q, id,
		in.BookingID, in.PaymentDate, in.Amount, in.PaymentMethod,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *PaymentsRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE payment_id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ PaymentsRepo = (*PaymentsRepoImpl)(nil)
