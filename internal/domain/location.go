package domain

type Location struct {
	ID            int64  `json:"locationID"`
	LocationName  string `json:"locationName"`
	Address       string `json:"address"`
	ContactNumber string `json:"contactNumber"`
}

type CreateLocationReq struct {
	LocationName  string `json:"locationName" validate:"required,max=100"`
	Address       string `json:"address" validate:"required,max=255"`
	ContactNumber string `json:"contactNumber" validate:"required,max=50"`
}

type UpdateLocationReq struct {
	LocationName  *string `json:"locationName" validate:"omitempty,max=100"`
	Address       *string `json:"address" validate:"omitempty,max=255"`
	ContactNumber *string `json:"contactNumber" validate:"omitempty,max=50"`
}
