package handlers

import (
	"net/http"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/diagnosis/car-rental/internal/http/response"
	"github.com/diagnosis/car-rental/internal/repo/postgres"
	"github.com/diagnosis/car-rental/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// RelationsHandler serves the read-only joins between customers, cars,
// bookings, reservations and payments.
type RelationsHandler struct {
	Customers    postgres.CustomersRepo
	Bookings     postgres.BookingsRepo
	Reservations postgres.ReservationsRepo
	Payments     postgres.PaymentsRepo
}

// BookingsByCustomer answers GET /booking/customer/{customerID}. An empty
// result is a 404 that still carries the empty list.
func (h *RelationsHandler) BookingsByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseID(chi.URLParam(r, "customerID"))
	if !ok {
		response.BadRequest(w, "Invalid customer ID")
		return
	}

	bookings, err := h.Bookings.ListByCustomer(r.Context(), customerID)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	if len(bookings) == 0 {
		response.JSON(w, http.StatusNotFound, map[string]interface{}{
			"message":  "No bookings found for this customer",
			"bookings": []domain.Booking{},
		})
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Bookings retrieved successfully",
		"bookings": bookings,
	})
}

// ReservationsByCar answers GET /reservation/car/{carID}.
func (h *RelationsHandler) ReservationsByCar(w http.ResponseWriter, r *http.Request) {
	carID, ok := parseID(chi.URLParam(r, "carID"))
	if !ok {
		response.BadRequest(w, "Invalid car ID")
		return
	}

	reservations, err := h.Reservations.ListByCar(r.Context(), carID)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Reservations retrieved successfully",
		"reservations": reservations,
	})
}

func (h *RelationsHandler) CustomerBookings(w http.ResponseWriter, r *http.Request) {
	c, ok := h.customer(w, r)
	if !ok {
		return
	}

	bookings, err := h.Bookings.ListByCustomer(r.Context(), c.ID)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Customer bookings retrieved successfully",
		"bookings": bookings,
	})
}

func (h *RelationsHandler) CustomerReservations(w http.ResponseWriter, r *http.Request) {
	c, ok := h.customer(w, r)
	if !ok {
		return
	}

	reservations, err := h.Reservations.ListByCustomer(r.Context(), c.ID)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Customer with reservations retrieved successfully",
		"customer": domain.CustomerWithReservations{Customer: *c, Reservations: reservations},
	})
}

func (h *RelationsHandler) CustomerBookingPayments(w http.ResponseWriter, r *http.Request) {
	c, ok := h.customer(w, r)
	if !ok {
		return
	}

	bookings, err := h.Bookings.ListByCustomer(r.Context(), c.ID)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	payments, err := h.Payments.ListByBookings(r.Context(), ids)
	if err != nil {
		h.internal(w, r, err)
		return
	}

	byBooking := make(map[int64][]domain.Payment, len(bookings))
	for _, p := range payments {
		byBooking[p.BookingID] = append(byBooking[p.BookingID], p)
	}
	out := make([]domain.BookingWithPayments, 0, len(bookings))
	for _, b := range bookings {
		ps := byBooking[b.ID]
		if ps == nil {
			ps = []domain.Payment{}
		}
		out = append(out, domain.BookingWithPayments{Booking: b, Payments: ps})
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Customer bookings with payments retrieved successfully",
		"bookings": out,
	})
}

// customer resolves {id}, writing 400/404/500 itself when it returns false.
func (h *RelationsHandler) customer(w http.ResponseWriter, r *http.Request) (*domain.Customer, bool) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid customer ID")
		return nil, false
	}
	c, err := h.Customers.FindByID(r.Context(), id)
	if err != nil {
		h.internal(w, r, err)
		return nil, false
	}
	if c == nil {
		response.NotFound(w, "Customer not found")
		return nil, false
	}
	return c, true
}

func (h *RelationsHandler) internal(w http.ResponseWriter, r *http.Request, err error) {
	logger.ErrorContext(r.Context(), "Relation query failed", "path", r.URL.Path, "error", err)
	response.InternalError(w, err)
}
