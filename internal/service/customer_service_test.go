package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/diagnosis/car-rental/internal/domain"
	tokens "github.com/diagnosis/car-rental/pkg/auth"
	"github.com/diagnosis/car-rental/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "service-test-secret"

type harness struct {
	svc       *customerService
	repo      *memCustomers
	mail      *fakeMailer
	published *recordingPublisher
	clock     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		repo:      newMemCustomers(),
		mail:      &fakeMailer{},
		published: &recordingPublisher{},
		clock:     time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
	h.svc = NewCustomerService(h.repo, h.mail, h.published, CustomerOptions{
		JWTSecret:           testSecret,
		AccessTokenTTL:      time.Hour,
		VerificationCodeTTL: 10 * time.Minute,
	}).(*customerService)
	h.svc.now = func() time.Time { return h.clock }
	return h
}

func (h *harness) register(t *testing.T, email, password string) *domain.Customer {
	t.Helper()
	c, err := h.svc.Register(context.Background(), &domain.RegisterCustomerReq{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)
	return c
}

func TestRegisterIssuesCode(t *testing.T) {
	h := newHarness(t)
	c := h.register(t, "  Jane@Example.com ", "secret1")

	assert.Equal(t, "jane@example.com", c.Email)
	assert.False(t, c.IsVerified)
	assert.Equal(t, domain.RoleUser, c.Role)
	require.NotNil(t, c.VerificationCode)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), *c.VerificationCode)
	require.NotNil(t, c.VerificationCodeExpiresAt)
	assert.Equal(t, h.clock.Add(10*time.Minute), *c.VerificationCodeExpiresAt)
	assert.NotEqual(t, "secret1", c.Password)

	sent := h.mail.last()
	assert.Equal(t, "code", sent.kind)
	assert.Equal(t, *c.VerificationCode, sent.code)
	assert.Equal(t, []string{events.CustomerRegistered}, h.published.subjects)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.Register(context.Background(), &domain.RegisterCustomerReq{
		FirstName: "A", LastName: "B", Email: "a@b.co", Password: "12345",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Empty(t, h.repo.rows)
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	h := newHarness(t)
	h.mail.err = errors.New("smtp down")

	c := h.register(t, "a@b.co", "secret1")
	assert.NotZero(t, c.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newHarness(t)
	h.register(t, "a@b.co", "secret1")

	_, err := h.svc.Register(context.Background(), &domain.RegisterCustomerReq{
		FirstName: "A", LastName: "B", Email: "A@b.co", Password: "secret1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestVerifyFlow(t *testing.T) {
	h := newHarness(t)
	c := h.register(t, "a@b.co", "secret1")
	code := *c.VerificationCode

	verified, err := h.svc.Verify(context.Background(), &domain.VerifyCustomerReq{Email: "a@b.co", VerificationCode: code})
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Nil(t, verified.VerificationCode)

	stored, _ := h.repo.FindByID(context.Background(), c.ID)
	assert.True(t, stored.IsVerified)
	assert.Nil(t, stored.VerificationCode)
	assert.Nil(t, stored.VerificationCodeExpiresAt)
	assert.Equal(t, "confirmed", h.mail.last().kind)

	// The code is cleared, so a replay is an invalid code.
	_, err = h.svc.Verify(context.Background(), &domain.VerifyCustomerReq{Email: "a@b.co", VerificationCode: code})
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestVerifyErrors(t *testing.T) {
	h := newHarness(t)
	c := h.register(t, "a@b.co", "secret1")
	code := *c.VerificationCode

	_, err := h.svc.Verify(context.Background(), &domain.VerifyCustomerReq{Email: "nobody@b.co", VerificationCode: code})
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, err = h.svc.Verify(context.Background(), &domain.VerifyCustomerReq{Email: "a@b.co", VerificationCode: wrong})
	assert.ErrorIs(t, err, ErrInvalidCode)

	// An expired code is rejected even when it matches.
	h.clock = h.clock.Add(10*time.Minute + time.Second)
	_, err = h.svc.Verify(context.Background(), &domain.VerifyCustomerReq{Email: "a@b.co", VerificationCode: code})
	assert.ErrorIs(t, err, ErrCodeExpired)

	stored, _ := h.repo.FindByID(context.Background(), c.ID)
	assert.False(t, stored.IsVerified)
}

func TestVerifyAtExactExpiryStillPasses(t *testing.T) {
	h := newHarness(t)
	c := h.register(t, "a@b.co", "secret1")

	h.clock = h.clock.Add(10 * time.Minute)
	_, err := h.svc.Verify(context.Background(), &domain.VerifyCustomerReq{Email: "a@b.co", VerificationCode: *c.VerificationCode})
	assert.NoError(t, err)
}

func TestResendVerification(t *testing.T) {
	h := newHarness(t)
	c := h.register(t, "a@b.co", "secret1")
	h.svc.newCode = func() (string, error) { return "424242", nil }
	h.clock = h.clock.Add(30 * time.Minute)

	require.NoError(t, h.svc.ResendVerification(context.Background(), &domain.ResendVerificationReq{Email: "a@b.co"}))

	stored, _ := h.repo.FindByID(context.Background(), c.ID)
	assert.Equal(t, "424242", *stored.VerificationCode)
	assert.Equal(t, h.clock.Add(10*time.Minute), *stored.VerificationCodeExpiresAt)
	assert.Equal(t, "424242", h.mail.last().code)

	_, err := h.svc.Verify(context.Background(), &domain.VerifyCustomerReq{Email: "a@b.co", VerificationCode: "424242"})
	require.NoError(t, err)

	err = h.svc.ResendVerification(context.Background(), &domain.ResendVerificationReq{Email: "a@b.co"})
	assert.ErrorIs(t, err, ErrAlreadyVerified)

	stored, _ = h.repo.FindByID(context.Background(), c.ID)
	assert.Nil(t, stored.VerificationCode)

	err = h.svc.ResendVerification(context.Background(), &domain.ResendVerificationReq{Email: "ghost@b.co"})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestLogin(t *testing.T) {
	h := newHarness(t)
	c := h.register(t, "a@b.co", "secret1")

	token, got, err := h.svc.Login(context.Background(), &domain.LoginReq{Email: "A@B.co", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	claims, err := tokens.Parse(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, c.ID, claims.CustomerID)
	assert.Equal(t, "Jane", claims.FirstName)
	assert.Equal(t, "user", claims.Role)

	_, _, err = h.svc.Login(context.Background(), &domain.LoginReq{Email: "a@b.co", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = h.svc.Login(context.Background(), &domain.LoginReq{Email: "ghost@b.co", Password: "secret1"})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestUpdateHashesPassword(t *testing.T) {
	h := newHarness(t)
	c := h.register(t, "a@b.co", "secret1")

	newPass := "brand-new"
	name := "Janet"
	updated, err := h.svc.Update(context.Background(), c.ID, &domain.UpdateCustomerReq{Password: &newPass, FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Janet", updated.FirstName)
	assert.NotEqual(t, newPass, updated.Password)

	_, _, err = h.svc.Login(context.Background(), &domain.LoginReq{Email: "a@b.co", Password: newPass})
	assert.NoError(t, err)
}

func TestNewVerificationCode(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 200; i++ {
		code, err := NewVerificationCode()
		require.NoError(t, err)
		assert.Regexp(t, re, code)
	}
}

func TestRegisterIgnoresRequestedRole(t *testing.T) {
	h := newHarness(t)

	var req domain.RegisterCustomerReq
	body := `{"firstName":"Mal","lastName":"Lory","email":"mal@b.co","password":"secret1","role":"admin"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	c, err := h.svc.Register(context.Background(), &req)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, c.Role)

	token, _, err := h.svc.Login(context.Background(), &domain.LoginReq{Email: "mal@b.co", Password: "secret1"})
	require.NoError(t, err)
	claims, err := tokens.Parse(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)
}
