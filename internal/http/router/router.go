package router

import (
	"net/http"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/diagnosis/car-rental/internal/http/handlers"
	authmw "github.com/diagnosis/car-rental/internal/http/middleware"
	"github.com/diagnosis/car-rental/internal/platform/payments"
	"github.com/diagnosis/car-rental/internal/repo/postgres"
	"github.com/diagnosis/car-rental/internal/service"
	"github.com/diagnosis/car-rental/pkg/events"
	"github.com/diagnosis/car-rental/pkg/logger"
	mw "github.com/diagnosis/car-rental/pkg/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps is everything the route table needs. Optional parts may be nil.
type Deps struct {
	JWTSecret string

	Customers    service.CustomerService
	CustomerRepo postgres.CustomersRepo
	Cars         postgres.CarsRepo
	Locations    postgres.LocationsRepo
	Bookings     postgres.BookingsRepo
	Reservations postgres.ReservationsRepo
	Payments     postgres.PaymentsRepo
	Maintenance  postgres.MaintenanceRepo
	Insurance    postgres.InsuranceRepo

	Events      events.Publisher
	Gateway     payments.Gateway
	Idempotency mw.IdempotencyStore
	AuthLimiter func(http.Handler) http.Handler
	Metrics     prometheus.Gatherer
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("car-rental-api"))
	r.Use(mw.Logging)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.ErrorContext(r.Context(), "Panic recovered", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	})
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Health)
	if d.Metrics != nil {
		r.Use(mw.Metrics(d.Metrics))
	}

	either := authmw.RequireRole(d.JWTSecret, domain.RoleAdmin, domain.RoleUser)
	admin := authmw.RequireRole(d.JWTSecret, domain.RoleAdmin)
	idempotent := mw.IdempotencyMiddleware(d.Idempotency)

	rel := &handlers.RelationsHandler{
		Customers:    d.CustomerRepo,
		Bookings:     d.Bookings,
		Reservations: d.Reservations,
		Payments:     d.Payments,
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Welcome to the Car Rental API"))
	})

	customers := handlers.NewCustomerHandler(d.Customers, d.AuthLimiter)
	r.Route("/customer", func(r chi.Router) {
		customers.Mount(r)
		r.Get("/{id}/bookings", rel.CustomerBookings)
		r.Get("/{id}/reservations", rel.CustomerReservations)
		r.Get("/{id}/booking-payment", rel.CustomerBookingPayments)
	})

	cars := handlers.NewCRUDHandler[domain.Car, domain.CreateCarReq, domain.UpdateCarReq](
		handlers.CarResource, d.Cars, d.Cars)
	r.Mount("/car", cars.Routes())

	locations := handlers.NewCRUDHandler[domain.Location, domain.CreateLocationReq, domain.UpdateLocationReq](
		handlers.LocationResource, d.Locations, d.Locations)
	r.Mount("/location", locations.Routes())

	bookings := handlers.NewCRUDHandler[domain.Booking, domain.CreateBookingReq, domain.UpdateBookingReq](
		handlers.BookingResource, d.Bookings, d.Bookings)
	bookings.AfterCreate = handlers.PublishBookingCreated(d.Events)
	bookings.AfterDelete = handlers.PublishBookingDeleted(d.Events)
	r.Route("/booking", func(r chi.Router) {
		r.With(either, idempotent).Post("/", bookings.Create)
		r.With(admin).Get("/", bookings.List)
		r.With(either).Get("/{id}", bookings.Get)
		r.With(either).Put("/{id}", bookings.Update)
		r.With(admin).Delete("/{id}", bookings.Delete)
		r.With(either).Get("/customer/{customerID}", rel.BookingsByCustomer)
	})

	reservations := handlers.NewCRUDHandler[domain.Reservation, domain.CreateReservationReq, domain.UpdateReservationReq](
		handlers.ReservationResource, d.Reservations, d.Reservations)
	r.Route("/reservation", func(r chi.Router) {
		r.Get("/car/{carID}", rel.ReservationsByCar)
		reservations.Mount(r)
	})

	pays := handlers.NewCRUDHandler[domain.Payment, domain.CreatePaymentReq, domain.UpdatePaymentReq](
		handlers.PaymentResource, d.Payments, d.Payments)
	pays.BeforeCreate = handlers.CreatePaymentIntent(d.Gateway)
	pays.CreateFailed = handlers.CancelPaymentIntent(d.Gateway)
	pays.AfterCreate = handlers.PublishPaymentCreated(d.Events)
	r.Route("/payment", func(r chi.Router) {
		r.Use(idempotent)
		pays.Mount(r)
	})

	maintenance := handlers.NewCRUDHandler[domain.Maintenance, domain.CreateMaintenanceReq, domain.UpdateMaintenanceReq](
		handlers.MaintenanceResource, d.Maintenance, d.Maintenance)
	r.Mount("/maintenance", maintenance.Routes())

	insurance := handlers.NewCRUDHandler[domain.Insurance, domain.CreateInsuranceReq, domain.UpdateInsuranceReq](
		handlers.InsuranceResource, d.Insurance, d.Insurance)
	r.Mount("/insurance", insurance.Routes())

	return r
}
