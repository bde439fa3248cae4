package domain

type Insurance struct {
	ID                int64  `json:"insuranceID"`
	CarID             int64  `json:"carID"`
	InsuranceProvider string `json:"insuranceProvider"`
	PolicyNumber      string `json:"policyNumber"`
	StartDate         Date   `json:"startDate"`
	EndDate           Date   `json:"endDate"`
}

type CreateInsuranceReq struct {
	CarID             int64  `json:"carID" validate:"required,gt=0"`
	InsuranceProvider string `json:"insuranceProvider" validate:"required,max=100"`
	PolicyNumber      string `json:"policyNumber" validate:"required,max=100"`
	StartDate         Date   `json:"startDate" validate:"required"`
	EndDate           Date   `json:"endDate"`
}

type UpdateInsuranceReq struct {
	CarID             *int64  `json:"carID" validate:"omitempty,gt=0"`
	InsuranceProvider *string `json:"insuranceProvider" validate:"omitempty,max=100"`
	PolicyNumber      *string `json:"policyNumber" validate:"omitempty,max=100"`
	StartDate         *Date   `json:"startDate"`
	EndDate           *Date   `json:"endDate"`
}
