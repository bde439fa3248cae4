package handlers

import "net/http"

var (
	CustomerResource = Resource{
		Name: "customer", Title: "Customer", PluralTitle: "Customers",
		Key: "customer", PluralKey: "customers",
		EmptyListNotFound: true,
		MutateBadIDStatus: http.StatusNotFound,
		DeleteMissing:     "Customer not found",
	}
	CarResource = Resource{
		Name: "car", Title: "Car", PluralTitle: "Cars",
		Key: "car", PluralKey: "cars",
		MutateBadIDStatus: http.StatusNotFound,
		DeleteMissing:     "Car not deleted",
	}
	LocationResource = Resource{
		Name: "location", Title: "Location", PluralTitle: "Locations",
		Key: "location", PluralKey: "locations",
		EmptyListNotFound: true,
		MutateBadIDStatus: http.StatusNotFound,
		DeleteMissing:     "Location not found",
	}
	BookingResource = Resource{
		Name: "booking", Title: "Booking", PluralTitle: "Bookings",
		Key: "booking", PluralKey: "bookings",
		MutateBadIDStatus: http.StatusNotFound,
		DeleteMissing:     "Booking not found or not deleted",
	}
	ReservationResource = Resource{
		Name: "reservation", Title: "Reservation", PluralTitle: "Reservations",
		Key: "reservation", PluralKey: "reservations",
		MutateBadIDStatus: http.StatusBadRequest,
		DeleteMissing:     "Reservation not found or already deleted",
	}
	PaymentResource = Resource{
		Name: "payment", Title: "Payment", PluralTitle: "Payments",
		Key: "payment", PluralKey: "payments",
		MutateBadIDStatus: http.StatusNotFound,
		DeleteMissing:     "Payment not found",
	}
	MaintenanceResource = Resource{
		Name: "maintenance", Title: "Maintenance", PluralTitle: "Maintenance records",
		Key: "maintenance", PluralKey: "maintenance",
		MutateBadIDStatus: http.StatusNotFound,
		DeleteMissing:     "Maintenance not found",
	}
	InsuranceResource = Resource{
		Name: "insurance", Title: "Insurance", PluralTitle: "Insurance policies",
		Key: "insurance", PluralKey: "insurance",
		MutateBadIDStatus: http.StatusNotFound,
		DeleteMissing:     "Insurance not found",
	}
)
