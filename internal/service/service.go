package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vadimbarashkov/resource-saver/internal/database"
	"github.com/vadimbarashkov/resource-saver/internal/models"
)

var (
	// ErrEmptyResourceField is returned when a resource is saved with an empty title or url.
	ErrEmptyResourceField = errors.New("empty resource field")
	// ErrUnknownResourceType is returned in strict-type mode when the resource type
	// is not one of the built-in categories.
	ErrUnknownResourceType = errors.New("unknown resource type")
)

// ResourceRepository defines the interface for working with the catalog at the business logic layer.
type ResourceRepository interface {
	// Create inserts a new resource into the repository.
	// Returns the created resource model or an error if the operation fails.
	Create(ctx context.Context, title, url, typ string) (*models.Resource, error)

	// List retrieves every stored resource in insertion order.
	// Returns an empty slice when the catalog is empty.
	List(ctx context.Context) ([]*models.Resource, error)

	// Delete removes a resource by its id.
	// Reports whether a record was removed along with any storage error.
	Delete(ctx context.Context, id int64) (bool, error)
}

// ResourceService provides methods to manage the resource catalog.
// The service holds no state of its own and uses a ResourceRepository
// interface to interact with the underlying database.
type ResourceService struct {
	repo        ResourceRepository
	strictTypes bool
}

// NewResourceService creates a new instance of ResourceService with the provided repository.
// When strictTypes is set, saved resources must use one of the built-in categories.
func NewResourceService(repo ResourceRepository, strictTypes bool) *ResourceService {
	return &ResourceService{
		repo:        repo,
		strictTypes: strictTypes,
	}
}

// SaveResource stores a new resource in the catalog. Title and url must be
// non-empty; the repository is never called with invalid input. The type tag
// is kept as an opaque string unless strict-type mode is enabled.
func (s *ResourceService) SaveResource(ctx context.Context, title, url, typ string) (*models.Resource, error) {
	const op = "service.ResourceService.SaveResource"

	if strings.TrimSpace(title) == "" || strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyResourceField)
	}

	if s.strictTypes && !isBuiltinType(typ) {
		return nil, fmt.Errorf("%s: %w", op, ErrUnknownResourceType)
	}

	resource, err := s.repo.Create(ctx, title, url, typ)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to save resource: %w", op, err)
	}

	return resource, nil
}

// ListResources retrieves the full catalog in insertion order.
func (s *ResourceService) ListResources(ctx context.Context) ([]*models.Resource, error) {
	const op = "service.ResourceService.ListResources"

	resources, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list resources: %w", op, err)
	}

	return resources, nil
}

// RemoveResource deletes the resource with the given id from the catalog.
// It returns database.ErrResourceNotFound when no such resource exists.
func (s *ResourceService) RemoveResource(ctx context.Context, id int64) error {
	const op = "service.ResourceService.RemoveResource"

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: failed to remove resource: %w", op, err)
	}

	if !removed {
		return fmt.Errorf("%s: %w", op, database.ErrResourceNotFound)
	}

	return nil
}

func isBuiltinType(typ string) bool {
	switch typ {
	case models.TypeArticle, models.TypeYouTube, models.TypeTool:
		return true
	default:
		return false
	}
}
