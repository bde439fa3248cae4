package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewCustomer is the row written at registration. Password is already hashed.
type NewCustomer struct {
	FirstName             string
	LastName              string
	Email                 string
	PasswordHash          string
	PhoneNumber           string
	Address               string
	Role                  domain.Role
	VerificationCode      string
	VerificationExpiresAt time.Time
}

// CustomerChanges carries a partial update. Nil fields are left untouched.
type CustomerChanges struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
	PhoneNumber  *string
	Address      *string
	Role         *domain.Role
}

type CustomersRepo interface {
	Create(ctx context.Context, in NewCustomer) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, id int64, in CustomerChanges) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) (bool, error)
	MarkVerified(ctx context.Context, id int64) error
	SetVerificationCode(ctx context.Context, id int64, code string, expiresAt time.Time) error
}

type CustomersRepoImpl struct{ pool *pgxpool.Pool }

func NewCustomersRepo(pool *pgxpool.Pool) *CustomersRepoImpl { return &CustomersRepoImpl{pool: pool} }

const customerCols = `customer_id, first_name, last_name, email, password,
COALESCE(phone_number, ''), COALESCE(address, ''), role, is_verified,
verification_code, verification_code_expires_at, created_at, updated_at`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Password,
		&c.PhoneNumber, &c.Address, &c.Role, &c.IsVerified,
		&c.VerificationCode, &c.VerificationCodeExpiresAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomersRepoImpl) Create(ctx context.Context, in NewCustomer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (first_name, last_name, email, password, phone_number, address, role,
                       is_verified, verification_code, verification_code_expires_at)
VALUES ($1,$2,$3,$4,NULLIF($5,''),NULLIF($6,''),COALESCE(NULLIF($7,''),'user'),false,$8,$9)
RETURNING ` + customerCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanCustomer(r.pool.QueryRow(ctx, q,
		in.FirstName, in.LastName, in.Email, in.PasswordHash, in.PhoneNumber, in.Address, string(in.Role),
		in.VerificationCode, in.VerificationExpiresAt,
	))
}

func (r *CustomersRepoImpl) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `SELECT ` + customerCols + ` FROM customers WHERE email=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	c, err := scanCustomer(r.pool.QueryRow(ctx, q, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *CustomersRepoImpl) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const q = `SELECT ` + customerCols + ` FROM customers WHERE customer_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	c, err := scanCustomer(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *CustomersRepoImpl) List(ctx context.Context) ([]domain.Customer, error) {
	const q = `SELECT ` + customerCols + ` FROM customers ORDER BY customer_id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CustomersRepoImpl) Update(ctx context.Context, id int64, in CustomerChanges) (*domain.Customer, error) {
	const q = `
UPDATE customers SET
  first_name   = COALESCE($2, first_name),
  last_name    = COALESCE($3, last_name),
  email        = COALESCE($4, email),
  password     = COALESCE($5, password),
  phone_number = COALESCE($6, phone_number),
  address      = COALESCE($7, address),
  role         = COALESCE($8, role),
  updated_at   = now()
WHERE customer_id=$1
RETURNING ` + customerCols
	var role *string
	if in.Role != nil {
		s := string(*in.Role)
		role = &s
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	c, err := scanCustomer(r.pool.QueryRow(ctx, q, id,
		in.FirstName, in.LastName, in.Email, in.PasswordHash, in.PhoneNumber, in.Address, role,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *CustomersRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE customer_id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// MarkVerified flips is_verified and clears the stored code and its expiry.
func (r *CustomersRepoImpl) MarkVerified(ctx context.Context, id int64) error {
	const q = `
UPDATE customers
SET is_verified = true, verification_code = NULL, verification_code_expires_at = NULL, updated_at = now()
WHERE customer_id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.pool.Exec(ctx, q, id)
	return err
}

func (r *CustomersRepoImpl) SetVerificationCode(ctx context.Context, id int64, code string, expiresAt time.Time) error {
	const q = `
UPDATE customers
SET verification_code = $2, verification_code_expires_at = $3, updated_at = now()
WHERE customer_id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.pool.Exec(ctx, q, id, code, expiresAt)
	return err
}

var _ CustomersRepo = (*CustomersRepoImpl)(nil)
