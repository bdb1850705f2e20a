// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/abgdnv/productcatalog/internal/product/service"
	"github.com/abgdnv/productcatalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

const (
	msgNotFound      = "Product not found"
	msgInternalError = "Internal server error"
	msgNotReady      = "Store not ready"
	msgBodyTooLarge  = "Request body too large"
)

// PayloadValidator turns a raw request body into a validated product input.
type PayloadValidator interface {
	Validate(body []byte) (model.Input, error)
}

type Handler struct {
	service      service.ProductService
	validator    PayloadValidator
	logger       *slog.Logger
	maxBodyBytes int64
}

// NewHandler creates a new product Handler. A non-positive maxBodyBytes selects DefaultMaxBodyBytes.
func NewHandler(service service.ProductService, validator PayloadValidator, logger *slog.Logger, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		service:      service,
		validator:    validator,
		logger:       logger.With("component", "rest"),
		maxBodyBytes: maxBodyBytes,
	}
}

// RegisterRoutes registers the HTTP routes for the product service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.With(web.BodyLimit(h.maxBodyBytes)).Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.With(web.BodyLimit(h.maxBodyBytes)).Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
	r.Get("/readyz", h.ReadyCheck)
}

// List returns every product, or those whose name contains the q query parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	query := r.URL.Query().Get("q")
	mLogger.DebugContext(r.Context(), "Received request to list products", "q", query)

	list, err := h.service.ListAll(r.Context(), query)
	if err != nil {
		h.internalError(w, r, mLogger, "Error retrieving product list", err)
		return
	}
	if list == nil {
		list = []model.Product{}
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := h.parseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.failure(w, r, mLogger, "Error retrieving product", id, err)
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	in, ok := h.readInput(w, r, mLogger)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.internalError(w, r, mLogger, "Error creating product", err)
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	w.Header().Set("Location", fmt.Sprintf("/products/%d", created.ID))
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// Update merges the request body over an existing product.
// The body is validated before the product is looked up.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	in, ok := h.readInput(w, r, mLogger)
	if !ok {
		return
	}
	id, ok := h.parseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	updated, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.failure(w, r, mLogger, "Error updating product", id, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := h.parseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.failure(w, r, mLogger, "Error deleting product", id, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ReadyCheck reports whether the product store can be read.
func (h *Handler) ReadyCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ready(r.Context()); err != nil {
		h.loggerWithReqID(r).WarnContext(r.Context(), "Readiness check failed", "error", err)
		web.RespondMessage(w, h.logger, http.StatusServiceUnavailable, msgNotReady)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// readInput reads and validates the request body, writing the 400/413 response itself on failure.
func (h *Handler) readInput(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (model.Input, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			mLogger.WarnContext(r.Context(), "Request body too large", "limit", maxErr.Limit)
			web.RespondMessage(w, mLogger, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return model.Input{}, false
		}
		mLogger.ErrorContext(r.Context(), "Error reading request body", "error", err)
		web.RespondErrors(w, mLogger, http.StatusBadRequest, []string{`"value" must be valid JSON`})
		return model.Input{}, false
	}

	in, err := h.validator.Validate(body)
	if err != nil {
		var validationErr *perrors.ValidationError
		if errors.As(err, &validationErr) {
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", validationErr.Messages)
			web.RespondErrors(w, mLogger, http.StatusBadRequest, validationErr.Messages)
			return model.Input{}, false
		}
		h.internalError(w, r, mLogger, "Error validating request body", err)
		return model.Input{}, false
	}
	return in, true
}

// parseID reads the {id} path value. A non-integer id cannot match any product, so it is reported as not found.
func (h *Handler) parseID(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (int64, bool) {
	id, ok := web.ParseInt64(r, "id")
	if !ok {
		mLogger.WarnContext(r.Context(), "Invalid product ID", "ID", r.PathValue("id"))
		web.RespondMessage(w, mLogger, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return id, true
}

// failure maps a service error for a single product to 404 or 500.
func (h *Handler) failure(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, msg string, id int64, err error) {
	if errors.Is(err, perrors.ErrProductNotFound) {
		mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
		web.RespondMessage(w, mLogger, http.StatusNotFound, msgNotFound)
		return
	}
	h.internalError(w, r, mLogger, msg, err, "ID", id)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, msg string, err error, args ...any) {
	mLogger.ErrorContext(r.Context(), msg, append(args, "error", err)...)
	web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgInternalError)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
