package domain

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

type Reservation struct {
	ID              int64             `json:"reservationID"`
	CustomerID      int64             `json:"customerID"`
	CarID           int64             `json:"carID"`
	ReservationDate Date              `json:"reservationDate"`
	PickupDate      Date              `json:"pickupDate"`
	ReturnDate      Date              `json:"returnDate"`
	Status          ReservationStatus `json:"status"`
}

type CreateReservationReq struct {
	CustomerID      int64             `json:"customerID" validate:"required,gt=0"`
	CarID           int64             `json:"carID" validate:"required,gt=0"`
	ReservationDate Date              `json:"reservationDate" validate:"required"`
	PickupDate      Date              `json:"pickupDate" validate:"required"`
	ReturnDate      Date              `json:"returnDate"`
	Status          ReservationStatus `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

type UpdateReservationReq struct {
	CustomerID      *int64             `json:"customerID" validate:"omitempty,gt=0"`
	CarID           *int64             `json:"carID" validate:"omitempty,gt=0"`
	ReservationDate *Date              `json:"reservationDate"`
	PickupDate      *Date              `json:"pickupDate"`
	ReturnDate      *Date              `json:"returnDate"`
	Status          *ReservationStatus `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

// CustomerWithReservations is a customer joined with its reservations.
type CustomerWithReservations struct {
	Customer
	Reservations []Reservation `json:"reservations"`
}
