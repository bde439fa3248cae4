package response

import (
	"encoding/json"
	"net/http"

	"github.com/diagnosis/car-rental/pkg/logger"
)

// ErrorResponse is the error envelope. Error carries the raw cause on 500s.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// WriteError writes {"message": message}.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, ErrorResponse{Message: message})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message)
}

// InternalError writes {"message": "Internal server error", "error": <raw>}.
func InternalError(w http.ResponseWriter, err error) {
	JSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Internal server error", Error: err.Error()})
}

// RawError writes a 500 whose message is the raw cause. Create paths use it.
func RawError(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusInternalServerError, err.Error())
}
