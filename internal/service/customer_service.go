package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/diagnosis/car-rental/internal/platform/auth"
	"github.com/diagnosis/car-rental/internal/platform/mailer"
	"github.com/diagnosis/car-rental/internal/repo/postgres"
	"github.com/diagnosis/car-rental/internal/utils"
	tokens "github.com/diagnosis/car-rental/pkg/auth"
	"github.com/diagnosis/car-rental/pkg/events"
	"github.com/diagnosis/car-rental/pkg/logger"
)

const minPasswordLength = 6

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrCodeExpired        = errors.New("verification code has expired")
	ErrAlreadyVerified    = errors.New("customer is already verified")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
)

type CustomerService interface {
	Register(ctx context.Context, req *domain.RegisterCustomerReq) (*domain.Customer, error)
	Verify(ctx context.Context, req *domain.VerifyCustomerReq) (*domain.Customer, error)
	ResendVerification(ctx context.Context, req *domain.ResendVerificationReq) error
	Login(ctx context.Context, req *domain.LoginReq) (string, *domain.Customer, error)

	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, id int64, req *domain.UpdateCustomerReq) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CustomerOptions struct {
	JWTSecret           string
	AccessTokenTTL      time.Duration
	VerificationCodeTTL time.Duration
}

type customerService struct {
	customers postgres.CustomersRepo
	mailer    mailer.Service
	events    events.Publisher
	opts      CustomerOptions

	now     func() time.Time
	newCode func() (string, error)
}

func NewCustomerService(
	customers postgres.CustomersRepo,
	mail mailer.Service,
	publisher events.Publisher,
	opts CustomerOptions,
) CustomerService {
	if opts.VerificationCodeTTL <= 0 {
		opts.VerificationCodeTTL = 10 * time.Minute
	}
	return &customerService{
		customers: customers,
		mailer:    mail,
		events:    publisher,
		opts:      opts,
		now:       time.Now,
		newCode:   NewVerificationCode,
	}
}

func (s *customerService) Register(ctx context.Context, req *domain.RegisterCustomerReq) (*domain.Customer, error) {
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	code, err := s.newCode()
	if err != nil {
		return nil, err
	}

	c, err := s.customers.Create(ctx, postgres.NewCustomer{
		FirstName:             utils.CollapseSpaces(req.FirstName),
		LastName:              utils.CollapseSpaces(req.LastName),
		Email:                 utils.NormalizeEmail(req.Email),
		PasswordHash:          hash,
		PhoneNumber:           utils.NormalizePhone(req.PhoneNumber),
		Address:               utils.CollapseSpaces(req.Address),
		Role:                  domain.RoleUser,
		VerificationCode:      code,
		VerificationExpiresAt: s.now().Add(s.opts.VerificationCodeTTL),
	})
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationCode(ctx, c.Email, c.FirstName, code, s.opts.VerificationCodeTTL); err != nil {
		logger.ErrorContext(ctx, "Failed to send verification email", "error", err, "customer_id", c.ID)
	}
	events.Emit(ctx, s.events, events.CustomerRegistered, events.CustomerRegisteredEvent{
		CustomerID:   c.ID,
		Email:        c.Email,
		RegisteredAt: c.CreatedAt,
	})
	return c, nil
}

func (s *customerService) Verify(ctx context.Context, req *domain.VerifyCustomerReq) (*domain.Customer, error) {
	c, err := s.customers.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if c == nil {
		return nil, ErrCustomerNotFound
	}

	if c.VerificationCode == nil {
		return nil, ErrInvalidCode
	}
	if exp := c.VerificationCodeExpiresAt; exp != nil && s.now().After(*exp) {
		return nil, ErrCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(*c.VerificationCode), []byte(req.VerificationCode)) != 1 {
		return nil, ErrInvalidCode
	}

	if err := s.customers.MarkVerified(ctx, c.ID); err != nil {
		return nil, fmt.Errorf("mark customer verified: %w", err)
	}
	c.IsVerified = true
	c.VerificationCode = nil
	c.VerificationCodeExpiresAt = nil

	if err := s.mailer.SendVerificationConfirmed(ctx, c.Email, c.FirstName); err != nil {
		logger.ErrorContext(ctx, "Failed to send verification confirmation", "error", err, "customer_id", c.ID)
	}
	events.Emit(ctx, s.events, events.CustomerVerified, events.CustomerVerifiedEvent{
		CustomerID: c.ID,
		Email:      c.Email,
		VerifiedAt: s.now(),
	})
	return c, nil
}

func (s *customerService) ResendVerification(ctx context.Context, req *domain.ResendVerificationReq) error {
	c, err := s.customers.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return fmt.Errorf("find customer: %w", err)
	}
	if c == nil {
		return ErrCustomerNotFound
	}
	if c.IsVerified {
		return ErrAlreadyVerified
	}

	code, err := s.newCode()
	if err != nil {
		return err
	}
	if err := s.customers.SetVerificationCode(ctx, c.ID, code, s.now().Add(s.opts.VerificationCodeTTL)); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	if err := s.mailer.SendVerificationCode(ctx, c.Email, c.FirstName, code, s.opts.VerificationCodeTTL); err != nil {
		logger.ErrorContext(ctx, "Failed to resend verification email", "error", err, "customer_id", c.ID)
	}
	return nil
}

// Login does not require a verified email address.
func (s *customerService) Login(ctx context.Context, req *domain.LoginReq) (string, *domain.Customer, error) {
	c, err := s.customers.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return "", nil, fmt.Errorf("find customer: %w", err)
	}
	if c == nil {
		return "", nil, ErrCustomerNotFound
	}

	ok, err := auth.ComparePassword(req.Password, c.Password)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := tokens.NewAccessToken(tokens.Claims{
		CustomerID:  c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		Role:        string(c.Role),
	}, s.opts.JWTSecret, s.opts.AccessTokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign access token: %w", err)
	}
	return token, c, nil
}

func (s *customerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

func (s *customerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

// Update hashes a new password before it reaches the store.
func (s *customerService) Update(ctx context.Context, id int64, req *domain.UpdateCustomerReq) (*domain.Customer, error) {
	changes := postgres.CustomerChanges{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Role:        req.Role,
	}
	if req.Email != nil {
		email := utils.NormalizeEmail(*req.Email)
		changes.Email = &email
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}
	return s.customers.Update(ctx, id, changes)
}

func (s *customerService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.customers.Delete(ctx, id)
}
