package domain

import "github.com/shopspring/decimal"

const PaymentMethodCard = "card"

type Payment struct {
	ID            int64           `json:"paymentID"`
	BookingID     int64           `json:"bookingID"`
	PaymentDate   Date            `json:"paymentDate"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	TransactionID *string         `json:"transactionID"`
}

type CreatePaymentReq struct {
	BookingID     int64           `json:"bookingID" validate:"required,gt=0"`
	PaymentDate   Date            `json:"paymentDate" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,max=50"`

	// Set by the payment gateway, never read from the body.
	TransactionID *string `json:"-"`
}

type UpdatePaymentReq struct {
	BookingID     *int64           `json:"bookingID" validate:"omitempty,gt=0"`
	PaymentDate   *Date            `json:"paymentDate"`
	Amount        *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	PaymentMethod *string          `json:"paymentMethod" validate:"omitempty,max=50"`
}
