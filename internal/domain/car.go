package domain

import "github.com/shopspring/decimal"

type Car struct {
	ID           int64           `json:"carID"`
	CarModel     string          `json:"carModel"`
	Year         Date            `json:"year"`
	Color        string          `json:"color"`
	RentalRate   decimal.Decimal `json:"rentalRate"`
	Availability bool            `json:"availability"`
	LocationID   *int64          `json:"locationID"`
}

type CreateCarReq struct {
	CarModel     string          `json:"carModel" validate:"required,max=100"`
	Year         Date            `json:"year" validate:"required"`
	Color        string          `json:"color" validate:"max=50"`
	RentalRate   decimal.Decimal `json:"rentalRate" validate:"gte=0"`
	Availability *bool           `json:"availability"`
	LocationID   *int64          `json:"locationID" validate:"omitempty,gt=0"`
}

type UpdateCarReq struct {
	CarModel     *string          `json:"carModel" validate:"omitempty,max=100"`
	Year         *Date            `json:"year"`
	Color        *string          `json:"color" validate:"omitempty,max=50"`
	RentalRate   *decimal.Decimal `json:"rentalRate" validate:"omitempty,gte=0"`
	Availability *bool            `json:"availability"`
	LocationID   *int64           `json:"locationID" validate:"omitempty,gt=0"`
}
