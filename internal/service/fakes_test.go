package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/diagnosis/car-rental/internal/repo/postgres"
)

type memCustomers struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Customer
}

func newMemCustomers() *memCustomers {
	return &memCustomers{rows: map[int64]*domain.Customer{}}
}

func clone(c *domain.Customer) *domain.Customer {
	cp := *c
	return &cp
}

func (m *memCustomers) Create(_ context.Context, in postgres.NewCustomer) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.Email == in.Email {
			return nil, errors.New(`duplicate key value violates unique constraint "customers_email_key"`)
		}
	}
	m.nextID++
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	code, exp := in.VerificationCode, in.VerificationExpiresAt
	c := &domain.Customer{
		ID:                        m.nextID,
		FirstName:                 in.FirstName,
		LastName:                  in.LastName,
		Email:                     in.Email,
		Password:                  in.PasswordHash,
		PhoneNumber:               in.PhoneNumber,
		Address:                   in.Address,
		Role:                      role,
		VerificationCode:          &code,
		VerificationCodeExpiresAt: &exp,
		CreatedAt:                 time.Now(),
		UpdatedAt:                 time.Now(),
	}
	m.rows[c.ID] = c
	return clone(c), nil
}

func (m *memCustomers) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.Email == email {
			return clone(c), nil
		}
	}
	return nil, nil
}

func (m *memCustomers) FindByID(_ context.Context, id int64) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.rows[id]; ok {
		return clone(c), nil
	}
	return nil, nil
}

func (m *memCustomers) List(_ context.Context) ([]domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Customer, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCustomers) Update(_ context.Context, id int64, in postgres.CustomerChanges) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	if in.FirstName != nil {
		c.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		c.LastName = *in.LastName
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.PasswordHash != nil {
		c.Password = *in.PasswordHash
	}
	if in.PhoneNumber != nil {
		c.PhoneNumber = *in.PhoneNumber
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.Role != nil {
		c.Role = *in.Role
	}
	return clone(c), nil
}

func (m *memCustomers) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

func (m *memCustomers) MarkVerified(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.rows[id]; ok {
		c.IsVerified = true
		c.VerificationCode = nil
		c.VerificationCodeExpiresAt = nil
	}
	return nil
}

func (m *memCustomers) SetVerificationCode(_ context.Context, id int64, code string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.rows[id]; ok {
		c.VerificationCode = &code
		c.VerificationCodeExpiresAt = &expiresAt
	}
	return nil
}

type sentMail struct {
	kind, to, code string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendVerificationCode(_ context.Context, toEmail, _ string, code string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{kind: "code", to: toEmail, code: code})
	return f.err
}

func (f *fakeMailer) SendVerificationConfirmed(_ context.Context, toEmail, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{kind: "confirmed", to: toEmail})
	return f.err
}

func (f *fakeMailer) last() sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
