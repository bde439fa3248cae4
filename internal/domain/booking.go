package domain

import "github.com/shopspring/decimal"

type Booking struct {
	ID              int64           `json:"bookingID"`
	CarID           int64           `json:"carID"`
	CustomerID      int64           `json:"customerID"`
	RentalStartDate Date            `json:"rentalStartDate"`
	RentalEndDate   Date            `json:"rentalEndDate"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
}

type CreateBookingReq struct {
	CarID           int64           `json:"carID" validate:"required,gt=0"`
	CustomerID      int64           `json:"customerID" validate:"required,gt=0"`
	RentalStartDate Date            `json:"rentalStartDate" validate:"required"`
	RentalEndDate   Date            `json:"rentalEndDate" validate:"required"`
	TotalAmount     decimal.Decimal `json:"totalAmount" validate:"gte=0"`
}

type UpdateBookingReq struct {
	CarID           *int64           `json:"carID" validate:"omitempty,gt=0"`
	CustomerID      *int64           `json:"customerID" validate:"omitempty,gt=0"`
	RentalStartDate *Date            `json:"rentalStartDate"`
	RentalEndDate   *Date            `json:"rentalEndDate"`
	TotalAmount     *decimal.Decimal `json:"totalAmount" validate:"omitempty,gte=0"`
}

// BookingWithPayments is a booking joined with its payments.
type BookingWithPayments struct {
	Booking
	Payments []Payment `json:"payments"`
}
