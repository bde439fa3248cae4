package handlers

import (
	"errors"
	"net/http"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/diagnosis/car-rental/internal/http/response"
	"github.com/diagnosis/car-rental/internal/service"
	"github.com/diagnosis/car-rental/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	svc     service.CustomerService
	crud    *CRUDHandler[domain.Customer, domain.RegisterCustomerReq, domain.UpdateCustomerReq]
	limiter func(http.Handler) http.Handler
}

// NewCustomerHandler serves the account flows and customer CRUD. limiter,
// when set, guards the account flows.
func NewCustomerHandler(svc service.CustomerService, limiter func(http.Handler) http.Handler) *CustomerHandler {
	return &CustomerHandler{
		svc:     svc,
		crud:    NewCRUDHandler[domain.Customer, domain.RegisterCustomerReq, domain.UpdateCustomerReq](CustomerResource, svc, nil),
		limiter: limiter,
	}
}

func (h *CustomerHandler) Routes() chi.Router {
	r := chi.NewRouter()
	h.Mount(r)
	return r
}

func (h *CustomerHandler) Mount(r chi.Router) {
	r.Group(func(r chi.Router) {
		if h.limiter != nil {
			r.Use(h.limiter)
		}
		r.Post("/", h.register)
		r.Post("/verify", h.verify)
		r.Post("/resend-verification", h.resend)
		r.Post("/login", h.login)
	})
	h.crud.Mount(r)
}

func (h *CustomerHandler) register(w http.ResponseWriter, r *http.Request) {
	var in domain.RegisterCustomerReq
	if !decodeAndValidate(w, r, &in) {
		return
	}

	c, err := h.svc.Register(r.Context(), &in)
	switch {
	case errors.Is(err, service.ErrPasswordTooShort):
		response.BadRequest(w, "Password must be at least 6 characters long")
		return
	case err != nil:
		logger.ErrorContext(r.Context(), "Customer registration failed", "error", err)
		response.RawError(w, err)
		return
	}

	logger.InfoContext(r.Context(), "Customer registered", "customer_id", c.ID)
	response.JSON(w, http.StatusCreated, response.ErrorResponse{
		Message: "Customer created successfully. Please check your email for the verification code.",
	})
}

func (h *CustomerHandler) verify(w http.ResponseWriter, r *http.Request) {
	var in domain.VerifyCustomerReq
	if !decodeAndValidate(w, r, &in) {
		return
	}

	_, err := h.svc.Verify(r.Context(), &in)
	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		response.NotFound(w, "Customer not found")
	case errors.Is(err, service.ErrCodeExpired):
		response.BadRequest(w, "Verification code has expired. Please request a new one.")
	case errors.Is(err, service.ErrInvalidCode):
		response.BadRequest(w, "Invalid verification code")
	case err != nil:
		logger.ErrorContext(r.Context(), "Customer verification failed", "error", err)
		response.InternalError(w, err)
	default:
		response.JSON(w, http.StatusOK, response.ErrorResponse{Message: "User verified successfully"})
	}
}

func (h *CustomerHandler) resend(w http.ResponseWriter, r *http.Request) {
	var in domain.ResendVerificationReq
	if !decodeAndValidate(w, r, &in) {
		return
	}

	err := h.svc.ResendVerification(r.Context(), &in)
	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		response.NotFound(w, "Customer not found")
	case errors.Is(err, service.ErrAlreadyVerified):
		response.BadRequest(w, "Customer is already verified")
	case err != nil:
		logger.ErrorContext(r.Context(), "Resend verification failed", "error", err)
		response.InternalError(w, err)
	default:
		response.JSON(w, http.StatusOK, response.ErrorResponse{Message: "New verification code sent successfully"})
	}
}

func (h *CustomerHandler) login(w http.ResponseWriter, r *http.Request) {
	var in domain.LoginReq
	if !decodeAndValidate(w, r, &in) {
		return
	}

	token, c, err := h.svc.Login(r.Context(), &in)
	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		response.NotFound(w, "customer not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid credentials")
	case err != nil:
		logger.ErrorContext(r.Context(), "Customer login failed", "error", err)
		response.WriteError(w, http.StatusInternalServerError, err.Error())
	default:
		response.JSON(w, http.StatusOK, domain.LoginRes{
			Message:  "Login successful",
			Token:    token,
			Customer: c.Public(),
		})
	}
}
