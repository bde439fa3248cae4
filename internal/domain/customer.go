package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), true
	default:
		return "", false
	}
}

// Customer is a stored account. Password and verification code never leave
// the server.
type Customer struct {
	ID          int64  `json:"customerID"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"-"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        Role   `json:"role"`
	IsVerified  bool   `json:"isVerified"`

	VerificationCode          *string    `json:"-"`
	VerificationCodeExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicCustomer is the login response view.
type PublicCustomer struct {
	ID          int64  `json:"customerID"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        Role   `json:"role"`
}

func (c *Customer) Public() PublicCustomer {
	return PublicCustomer{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		Role:        c.Role,
	}
}

// Password length is checked by the customer service so the client gets
// its dedicated message. There is no role field: self-registered accounts
// are always users.
type RegisterCustomerReq struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber" validate:"max=50"`
	Address     string `json:"address" validate:"max=255"`
}

type UpdateCustomerReq struct {
	FirstName   *string `json:"firstName" validate:"omitempty,max=100"`
	LastName    *string `json:"lastName" validate:"omitempty,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=6"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=50"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	Role        *Role   `json:"role" validate:"omitempty,oneof=admin user"`
}

type VerifyCustomerReq struct {
	Email            string `json:"email" validate:"required,email"`
	VerificationCode string `json:"verificationCode" validate:"required"`
}

type ResendVerificationReq struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRes struct {
	Message  string         `json:"message"`
	Token    string         `json:"token"`
	Customer PublicCustomer `json:"customer"`
}
