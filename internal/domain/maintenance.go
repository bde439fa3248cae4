package domain

import "github.com/shopspring/decimal"

type Maintenance struct {
	ID              int64           `json:"maintenanceID"`
	CarID           int64           `json:"carID"`
	MaintenanceDate Date            `json:"maintenanceDate"`
	Description     string          `json:"description"`
	Cost            decimal.Decimal `json:"cost"`
}

type CreateMaintenanceReq struct {
	CarID           int64           `json:"carID" validate:"required,gt=0"`
	MaintenanceDate Date            `json:"maintenanceDate" validate:"required"`
	Description     string          `json:"description" validate:"max=255"`
	Cost            decimal.Decimal `json:"cost" validate:"gte=0"`
}

type UpdateMaintenanceReq struct {
	CarID           *int64           `json:"carID" validate:"omitempty,gt=0"`
	MaintenanceDate *Date            `json:"maintenanceDate"`
	Description     *string          `json:"description" validate:"omitempty,max=255"`
	Cost            *decimal.Decimal `json:"cost" validate:"omitempty,gte=0"`
}
