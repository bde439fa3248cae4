package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MaintenanceRepo interface {
	List(ctx context.Context) ([]domain.Maintenance, error)
	Get(ctx context.Context, id int64) (*domain.Maintenance, error)
	Create(ctx context.Context, in *domain.CreateMaintenanceReq) (*domain.Maintenance, error)
	Update(ctx context.Context, id int64, in *domain.UpdateMaintenanceReq) (*domain.Maintenance, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type MaintenanceRepoImpl struct{ pool *pgxpool.Pool }

func NewMaintenanceRepo(pool *pgxpool.Pool) *MaintenanceRepoImpl {
	return &MaintenanceRepoImpl{pool: pool}
}

const maintenanceCols = `maintenance_id, car_id, maintenance_date, COALESCE(description, ''), cost`

func scanMaintenance(row pgx.Row) (*domain.Maintenance, error) {
	var m domain.Maintenance
	if err := row.Scan(&m.ID, &m.CarID, &m.MaintenanceDate, &m.Description, &m.Cost); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaintenanceRepoImpl) List(ctx context.Context) ([]domain.Maintenance, error) {
	const q = `SELECT ` + maintenanceCols + ` FROM maintenance ORDER BY maintenance_id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Maintenance, 0)
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *MaintenanceRepoImpl) Get(ctx context.Context, id int64) (*domain.Maintenance, error) {
	const q = `SELECT ` + maintenanceCols + ` FROM maintenance WHERE maintenance_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	m, err := scanMaintenance(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *MaintenanceRepoImpl) Create(ctx context.Context, in *domain.CreateMaintenanceReq) (*domain.Maintenance, error) {
	const q = `
INSERT INTO maintenance (car_id, maintenance_date, description, cost)
VALUES ($1,$2,NULLIF($3,''),$4)
RETURNING ` + maintenanceCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	m, err := scanMaintenance(r.pool.QueryRow(ctx, q, in.CarID, in.MaintenanceDate, in.Description, in.Cost))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *MaintenanceRepoImpl) Update(ctx context.Context, id int64, in *domain.UpdateMaintenanceReq) (*domain.Maintenance, error) {
	const q = `
UPDATE maintenance SET
  car_id           = COALESCE($2, car_id),
  maintenance_date = COALESCE($3, maintenance_date),
  description      = COALESCE($4, description),
  cost             = COALESCE($5, cost),
  updated_at       = now()
WHERE maintenance_id=$1
RETURNING ` + maintenanceCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	m, err := scanMaintenance(r.pool.QueryRow(ctx, q, id, in.CarID, in.MaintenanceDate, in.Description, in.Cost))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *MaintenanceRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, `DELETE FROM maintenance WHERE maintenance_id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ MaintenanceRepo = (*MaintenanceRepoImpl)(nil)
