package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/resource-saver/internal/database"
	"github.com/vadimbarashkov/resource-saver/internal/models"
	"github.com/vadimbarashkov/resource-saver/internal/service"
	"github.com/vadimbarashkov/resource-saver/pkg/response"
)

const (
	serviceName    = "Resource Saver API"
	serviceVersion = "1.0.0"
)

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// handleHealth handles health check requests to ensure the server is running.
// It never touches the store.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, healthResponse{
		Status:  "healthy",
		Service: serviceName,
		Version: serviceVersion,
	})
}

// resourceRequest represents the request payload for saving a resource.
type resourceRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Type  string `json:"type" validate:"required"`
}

// resourceResponse represents a single catalog record on the wire.
// Field order is fixed by the capture-client contract.
type resourceResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// toResourceResponse converts a resource model from the business layer into a response payload.
func toResourceResponse(resource *models.Resource) resourceResponse {
	return resourceResponse{
		ID:        resource.ID,
		Title:     resource.Title,
		URL:       resource.URL,
		Type:      resource.Type,
		CreatedAt: resource.CreatedAt,
	}
}

// handleSaveResource handles POST requests to save a captured page.
//
// The request must contain a non-empty title, a valid URL, and a type tag.
// The handler validates the input before the store is touched, then returns
// the created record with its assigned id and creation timestamp.
func handleSaveResource(svc ResourceService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleSaveResource"

	return func(w http.ResponseWriter, r *http.Request) {
		var req resourceRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		resource, err := svc.SaveResource(r.Context(), req.Title, req.URL, req.Type)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmptyResourceField):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyResourceFieldResponse)
			case errors.Is(err, service.ErrUnknownResourceType):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.UnknownResourceTypeResponse)
			case errors.Is(err, database.ErrResourceExists):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.ResourceExistsResponse)
			default:
				httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.ServerErrorResponse)
			}
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, toResourceResponse(resource))
	}
}

// handleListResources handles GET requests for the full catalog.
//
// The handler returns every stored record in insertion order. An empty
// catalog yields an empty array, not an error.
func handleListResources(svc ResourceService) http.HandlerFunc {
	const op = "api.http.handleListResources"

	return func(w http.ResponseWriter, r *http.Request) {
		resources, err := svc.ListResources(r.Context())
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		data := make([]resourceResponse, 0, len(resources))
		for _, resource := range resources {
			data = append(data, toResourceResponse(resource))
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, data)
	}
}

// handleDeleteResource handles DELETE requests to remove a resource by id.
//
// The id must parse as an integer; otherwise the handler answers 400 without
// calling the store. Deleting an id that doesn't exist answers 404.
func handleDeleteResource(svc ResourceService) http.HandlerFunc {
	const op = "api.http.handleDeleteResource"
	const successMsg = "The resource was successfully deleted."

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "resourceID"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.InvalidResourceIDResponse)
			return
		}

		if err := svc.RemoveResource(r.Context(), id); err != nil {
			if errors.Is(err, database.ErrResourceNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ResourceNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg))
	}
}
