package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/diagnosis/car-rental/internal/http/response"
	"github.com/diagnosis/car-rental/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// Store is the read/update/delete side of a resource.
type Store[T, U any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, id int64, in *U) (*T, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Creator[T, C any] interface {
	Create(ctx context.Context, in *C) (*T, error)
}

// Resource names an entity and carries its status-code quirks.
type Resource struct {
	Name        string // "car": ids, not-created message
	Title       string // "Car"
	PluralTitle string // "Cars"
	Key         string // JSON key of a single record
	PluralKey   string // JSON key of a list

	EmptyListNotFound bool   // 404 "No <plural> found" on an empty list
	MutateBadIDStatus int    // status for a non-numeric id on PUT/DELETE
	DeleteMissing     string // message when a delete removes nothing
}

type CRUDHandler[T, C, U any] struct {
	res     Resource
	store   Store[T, U]
	creator Creator[T, C]

	// BeforeCreate runs after validation. An error fails the request with 500.
	BeforeCreate func(ctx context.Context, in *C) error
	// CreateFailed runs when the store rejects a create that passed BeforeCreate.
	CreateFailed func(ctx context.Context, in *C)
	AfterCreate  func(ctx context.Context, created *T)
	AfterDelete  func(ctx context.Context, id int64)
}

// NewCRUDHandler builds a handler. A nil creator leaves Create unserved.
func NewCRUDHandler[T, C, U any](res Resource, store Store[T, U], creator Creator[T, C]) *CRUDHandler[T, C, U] {
	if res.MutateBadIDStatus == 0 {
		res.MutateBadIDStatus = http.StatusNotFound
	}
	if res.DeleteMissing == "" {
		res.DeleteMissing = res.Title + " not deleted"
	}
	return &CRUDHandler[T, C, U]{res: res, store: store, creator: creator}
}

func (h *CRUDHandler[T, C, U]) Routes() chi.Router {
	r := chi.NewRouter()
	h.Mount(r)
	return r
}

// Mount registers the five routes on r without any guard.
func (h *CRUDHandler[T, C, U]) Mount(r chi.Router) {
	if h.creator != nil {
		r.Post("/", h.Create)
	}
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *CRUDHandler[T, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var in C
	if !decodeAndValidate(w, r, &in) {
		return
	}

	if h.BeforeCreate != nil {
		if err := h.BeforeCreate(r.Context(), &in); err != nil {
			logger.ErrorContext(r.Context(), "Create rejected", "resource", h.res.Name, "error", err)
			response.RawError(w, err)
			return
		}
	}

	created, err := h.creator.Create(r.Context(), &in)
	if err != nil || created == nil {
		if h.CreateFailed != nil {
			h.CreateFailed(r.Context(), &in)
		}
		if err != nil {
			logger.ErrorContext(r.Context(), "Create failed", "resource", h.res.Name, "error", err)
			response.RawError(w, err)
			return
		}
		response.WriteError(w, http.StatusInternalServerError, h.res.Name+" not created")
		return
	}

	if h.AfterCreate != nil {
		h.AfterCreate(r.Context(), created)
	}
	response.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": h.res.Title + " created successfully",
		h.res.Key: created,
	})
}

func (h *CRUDHandler[T, C, U]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.internal(w, r, err)
		return
	}
	if len(items) == 0 && h.res.EmptyListNotFound {
		response.NotFound(w, "No "+h.res.PluralKey+" found")
		return
	}
	if items == nil {
		items = []T{}
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":       h.res.PluralTitle + " retrieved successfully",
		h.res.PluralKey: items,
	})
}

func (h *CRUDHandler[T, C, U]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, h.invalidID())
		return
	}

	item, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	if item == nil {
		response.NotFound(w, h.res.Title+" not found")
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": h.res.Title + " retrieved successfully",
		h.res.Key: item,
	})
}

func (h *CRUDHandler[T, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.WriteError(w, h.res.MutateBadIDStatus, h.invalidID())
		return
	}

	var in U
	if !decodeAndValidate(w, r, &in) {
		return
	}

	existing, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	if existing == nil {
		response.NotFound(w, h.res.Title+" not found")
		return
	}

	updated, err := h.store.Update(r.Context(), id, &in)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	if updated == nil {
		response.NotFound(w, h.res.Title+" not updated")
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":               h.res.Title + " updated successfully",
		"updated" + h.res.Title: updated,
	})
}

func (h *CRUDHandler[T, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.WriteError(w, h.res.MutateBadIDStatus, h.invalidID())
		return
	}

	existing, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	if existing == nil {
		response.NotFound(w, h.res.Title+" not found")
		return
	}

	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	if !deleted {
		response.NotFound(w, h.res.DeleteMissing)
		return
	}

	if h.AfterDelete != nil {
		h.AfterDelete(r.Context(), id)
	}
	response.JSON(w, http.StatusOK, response.ErrorResponse{Message: h.res.Title + " deleted successfully"})
}

func (h *CRUDHandler[T, C, U]) invalidID() string {
	return "Invalid " + h.res.Name + " ID"
}

func (h *CRUDHandler[T, C, U]) internal(w http.ResponseWriter, r *http.Request, err error) {
	logger.ErrorContext(r.Context(), "Store operation failed", "resource", h.res.Name, "error", err)
	response.InternalError(w, err)
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// decodeAndValidate writes a 400 and returns false when the body is not
// valid JSON for dst or fails its validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			response.BadRequest(w, "Invalid value for "+typeErr.Field)
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			response.BadRequest(w, "Malformed JSON body")
		default:
			response.BadRequest(w, "Invalid request body: "+err.Error())
		}
		return false
	}
	if err := domain.Validate(dst); err != nil {
		response.BadRequest(w, err.Error())
		return false
	}
	return true
}
