package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/diagnosis/car-rental/internal/repo/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type relCustomers struct {
	postgres.CustomersRepo
	rows map[int64]*domain.Customer
}

func (f relCustomers) FindByID(_ context.Context, id int64) (*domain.Customer, error) {
	return f.rows[id], nil
}

type relBookings struct {
	postgres.BookingsRepo
	rows []domain.Booking
}

func (f relBookings) ListByCustomer(_ context.Context, customerID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.rows {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

type relReservations struct {
	postgres.ReservationsRepo
	rows []domain.Reservation
}

func (f relReservations) ListByCar(_ context.Context, carID int64) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, r := range f.rows {
		if r.CarID == carID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f relReservations) ListByCustomer(_ context.Context, customerID int64) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, r := range f.rows {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type relPayments struct {
	postgres.PaymentsRepo
	rows []domain.Payment
}

func (f relPayments) ListByBookings(_ context.Context, ids []int64) ([]domain.Payment, error) {
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []domain.Payment
	for _, p := range f.rows {
		if want[p.BookingID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func relRouter() http.Handler {
	h := &RelationsHandler{
		Customers: relCustomers{rows: map[int64]*domain.Customer{7: ada(), 8: {ID: 8, FirstName: "Bob"}}},
		Bookings: relBookings{rows: []domain.Booking{
			{ID: 1, CarID: 3, CustomerID: 7, TotalAmount: decimal.NewFromInt(120)},
			{ID: 2, CarID: 4, CustomerID: 7, TotalAmount: decimal.NewFromInt(80)},
		}},
		Reservations: relReservations{rows: []domain.Reservation{
			{ID: 5, CarID: 3, CustomerID: 7, Status: domain.ReservationPending},
		}},
		Payments: relPayments{rows: []domain.Payment{
			{ID: 10, BookingID: 1, Amount: decimal.NewFromInt(60), PaymentMethod: "cash"},
			{ID: 11, BookingID: 1, Amount: decimal.NewFromInt(60), PaymentMethod: "card"},
		}},
	}
	r := chi.NewRouter()
	r.Get("/booking/customer/{customerID}", h.BookingsByCustomer)
	r.Get("/reservation/car/{carID}", h.ReservationsByCar)
	r.Get("/customer/{id}/bookings", h.CustomerBookings)
	r.Get("/customer/{id}/reservations", h.CustomerReservations)
	r.Get("/customer/{id}/booking-payment", h.CustomerBookingPayments)
	return r
}

func TestBookingsByCustomer(t *testing.T) {
	r := relRouter()

	rec := do(r, http.MethodGet, "/booking/customer/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["bookings"], 2)

	rec = do(r, http.MethodGet, "/booking/customer/8", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"No bookings found for this customer","bookings":[]}`, rec.Body.String())

	rec = do(r, http.MethodGet, "/booking/customer/x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReservationsByCar(t *testing.T) {
	r := relRouter()

	rec := do(r, http.MethodGet, "/reservation/car/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["reservations"], 1)

	rec = do(r, http.MethodGet, "/reservation/car/x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid car ID"}`, rec.Body.String())
}

func TestCustomerReservations(t *testing.T) {
	r := relRouter()

	rec := do(r, http.MethodGet, "/customer/7/reservations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	customer := decode(t, rec)["customer"].(map[string]interface{})
	assert.Equal(t, "Ada", customer["firstName"])
	assert.Len(t, customer["reservations"], 1)

	rec = do(r, http.MethodGet, "/customer/99/reservations", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Customer not found"}`, rec.Body.String())
}

func TestCustomerBookingPaymentsGroupsByBooking(t *testing.T) {
	r := relRouter()

	rec := do(r, http.MethodGet, "/customer/7/booking-payment", "")
	require.Equal(t, http.StatusOK, rec.Code)
	bookings := decode(t, rec)["bookings"].([]interface{})
	require.Len(t, bookings, 2)

	first := bookings[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["bookingID"])
	assert.Len(t, first["payments"], 2)

	second := bookings[1].(map[string]interface{})
	assert.Equal(t, []interface{}{}, second["payments"])
}

func TestCustomerBookingsEmptyIsOK(t *testing.T) {
	rec := do(relRouter(), http.MethodGet, "/customer/8/bookings", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
