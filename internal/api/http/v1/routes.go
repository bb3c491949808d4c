package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/resource-saver/internal/models"

	httpSwagger "github.com/swaggo/http-swagger"
)

// ResourceService defines the interface for the core catalog business logic.
type ResourceService interface {
	// SaveResource stores a new resource built from the captured page metadata.
	// It returns the created resource with its assigned id and creation timestamp,
	// or an error if validation or the underlying store fails.
	SaveResource(ctx context.Context, title, url, typ string) (*models.Resource, error)

	// ListResources retrieves the full catalog in insertion order.
	ListResources(ctx context.Context) ([]*models.Resource, error)

	// RemoveResource deletes the resource with the given id.
	// It returns an error if the resource doesn't exist or if deletion fails.
	RemoveResource(ctx context.Context, id int64) error
}

// getValidate initializes a new validator instance for validating incoming request payloads.
// It customizes tag name extraction from struct fields to match JSON tags.
func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// NewRouter initializes and returns a new HTTP router with all routes and middleware configured.
func NewRouter(logger *httplog.Logger, resourceSvc ResourceService) http.Handler {
	r := chi.NewRouter()

	// The capture extension calls from arbitrary page origins.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"POST", "GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	validate := getValidate()

	r.Get("/", handleHealth)
	r.Post("/save", handleSaveResource(resourceSvc, validate))

	r.Route("/resources", func(r chi.Router) {
		r.Get("/", handleListResources(resourceSvc))
		r.Delete("/{resourceID}", handleDeleteResource(resourceSvc))
	})

	return r
}
