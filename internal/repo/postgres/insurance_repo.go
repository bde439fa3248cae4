package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InsuranceRepo interface {
	List(ctx context.Context) ([]domain.Insurance, error)
	Get(ctx context.Context, id int64) (*domain.Insurance, error)
	Create(ctx context.Context, in *domain.CreateInsuranceReq) (*domain.Insurance, error)
	Update(ctx context.Context, id int64, in *domain.UpdateInsuranceReq) (*domain.Insurance, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type InsuranceRepoImpl struct{ pool *pgxpool.Pool }

func NewInsuranceRepo(pool *pgxpool.Pool) *InsuranceRepoImpl { return &InsuranceRepoImpl{pool: pool} }

const insuranceCols = `insurance_id, car_id, insurance_provider, policy_number, start_date, end_date`

func scanInsurance(row pgx.Row) (*domain.Insurance, error) {
	var in domain.Insurance
	if err := row.Scan(&in.ID, &in.CarID, &in.InsuranceProvider, &in.PolicyNumber, &in.StartDate, &in.EndDate); err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *InsuranceRepoImpl) List(ctx context.Context) ([]domain.Insurance, error) {
	const q = `SELECT ` + insuranceCols + ` FROM insurance ORDER BY insurance_id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Insurance, 0)
	for rows.Next() {
		in, err := scanInsurance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *in)
	}
	return out, rows.Err()
}

func (r *InsuranceRepoImpl) Get(ctx context.Context, id int64) (*domain.Insurance, error) {
	const q = `SELECT ` + insuranceCols + ` FROM insurance WHERE insurance_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	in, err := scanInsurance(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return in, err
}

func (r *InsuranceRepoImpl) Create(ctx context.Context, req *domain.CreateInsuranceReq) (*domain.Insurance, error) {
	const q = `
INSERT INTO insurance (car_id, insurance_provider, policy_number, start_date, end_date)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + insuranceCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	in, err := scanInsurance(r.pool.QueryRow(ctx, q,
		req.CarID, req.InsuranceProvider, req.PolicyNumber, req.StartDate, req.EndDate,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return in, err
}

func (r *InsuranceRepoImpl) Update(ctx context.Context, id int64, req *domain.UpdateInsuranceReq) (*domain.Insurance, error) {
	const q = `
UPDATE insurance SET
  car_id             = COALESCE($2, car_id),
  insurance_provider = COALESCE($3, insurance_provider),
  policy_number      = COALESCE($4, policy_number),
  start_date         = COALESCE($5, start_date),
  end_date           = COALESCE($6, end_date),
  updated_at         = now()
WHERE insurance_id=$1
RETURNING ` + insuranceCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	in, err := scanInsurance(r.pool.QueryRow(ctx, q, id,
		req.CarID, req.InsuranceProvider, req.PolicyNumber, req.StartDate, req.EndDate,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return in, err
}

func (r *InsuranceRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, `DELETE FROM insurance WHERE insurance_id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ InsuranceRepo = (*InsuranceRepoImpl)(nil)
