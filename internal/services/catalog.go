package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/charlesng35/catalog/internal/cache"
	"github.com/charlesng35/catalog/internal/monitoring"
	"github.com/charlesng35/catalog/internal/repository"
	appErrors "github.com/charlesng35/catalog/pkg/errors"
	"github.com/charlesng35/catalog/pkg/logger"
	"github.com/charlesng35/catalog/pkg/response"
)

// Cache namespaces of the catalog entities.
const (
	NamespaceCompanies     = "companies"
	NamespaceCategories    = "categories"
	NamespaceSubcategories = "subcategories"
	NamespaceProducts      = "products"
)

// Write outcomes reported to monitoring.
const (
	writeSuccess  = "success"
	writeConflict = "conflict"
	writeNotFound = "not_found"
	writeError    = "error"
)

// CacheDeps carries the shared cache read and invalidation paths.
type CacheDeps struct {
	Reader      *cache.Reader
	Invalidator *cache.Invalidator
}

func (d CacheDeps) validate(service string) error {
	if d.Reader == nil {
		return fmt.Errorf("%s service: cache reader is required", service)
	}
	if d.Invalidator == nil {
		return fmt.Errorf("%s service: cache invalidator is required", service)
	}
	return nil
}

// ListOptions selects one page of a list. Values below 1 fall back to page 1 and limit 10.
type ListOptions struct {
	Page  int
	Limit int
}

// entityNames holds the wording of one entity in envelopes, errors and metrics.
type entityNames struct {
	entity    string
	namespace string
	singular  string
	plural    string
}

func (n entityNames) notFound() string {
	return n.singular + " not found"
}

// crud is the read/write skeleton every catalog service is built on.
type crud[T any] struct {
	names   entityNames
	repo    repository.Repository[T]
	reader  *cache.Reader
	inval   *cache.Invalidator
	preload []string
	idOf    func(*T) string
	log     *zap.Logger
}

func newCrud[T any](names entityNames, repo repository.Repository[T], deps CacheDeps, idOf func(*T) string, preload ...string) crud[T] {
	return crud[T]{
		names:   names,
		repo:    repo,
		reader:  deps.Reader,
		inval:   deps.Invalidator,
		preload: preload,
		idOf:    idOf,
		log:     logger.WithModule(names.entity + "-service"),
	}
}

func (c *crud[T]) list(ctx context.Context, query cache.PageQuery, filter repository.Filter) (response.Envelope, error) {
	query.Namespace = c.names.namespace
	if query.EmptyMessage == "" {
		query.EmptyMessage = "No " + lowerFirst(c.names.plural) + " found"
	}

	page, err := cache.FetchPage(ctx, c.reader, query, func(ctx context.Context, skip, take int) ([]T, int64, error) {
		items, total, err := c.repo.FindAndCount(ctx, filter, skip, take)
		if err != nil {
			return nil, 0, fmt.Errorf("%s service: list: %w", c.names.entity, err)
		}
		return items, total, nil
	})
	if err != nil {
		return response.Envelope{}, err
	}

	if page.FromCache {
		c.log.Debug("list served from cache", zap.Int("page", page.Meta.CurrentPage))
		return response.Success(c.names.plural+" retrieved from cache", page.Items, page.Meta), nil
	}
	return response.Success(c.names.plural+" fetched successfully", page.Items, page.Meta), nil
}

func (c *crud[T]) show(ctx context.Context, id string) (response.Envelope, error) {
	item, err := cache.FetchItem(ctx, c.reader, c.names.namespace, id, c.names.notFound(), func(ctx context.Context) (*T, error) {
		entity, err := c.repo.FindByID(ctx, id, c.preload...)
		if err != nil {
			return nil, fmt.Errorf("%s service: load %s: %w", c.names.entity, id, err)
		}
		return entity, nil
	})
	if err != nil {
		return response.Envelope{}, err
	}
	return response.Success(c.names.singular+" found successfully", item.Value, nil), nil
}

// mustFind loads id without caching and fails with NotFound when it is absent.
func (c *crud[T]) mustFind(ctx context.Context, id string) (*T, error) {
	entity, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s service: load %s: %w", c.names.entity, id, err)
	}
	if entity == nil {
		return nil, appErrors.NotFound(c.names.notFound())
	}
	return entity, nil
}

// ensureUnique fails with Conflict when another row already has field=value. selfID excludes
// the row being updated.
func (c *crud[T]) ensureUnique(ctx context.Context, field string, value any, selfID, message string) error {
	existing, err := c.repo.FindByField(ctx, field, value)
	if err != nil {
		return fmt.Errorf("%s service: lookup %s: %w", c.names.entity, field, err)
	}
	if existing != nil && c.idOf(existing) != selfID {
		return appErrors.Conflict(message)
	}
	return nil
}

func (c *crud[T]) create(ctx context.Context, entity *T, conflictMessage string) (response.Envelope, error) {
	if err := c.repo.Create(ctx, entity); err != nil {
		return response.Envelope{}, c.failWrite("create", c.translateWriteError("create", err, conflictMessage))
	}
	if err := c.inval.AfterCreate(ctx, c.names.namespace); err != nil {
		return response.Envelope{}, c.failWrite("create", err)
	}

	c.recordWrite("create", writeSuccess)
	c.log.Info("created", zap.String("id", c.idOf(entity)))
	return response.Success(c.names.singular+" created successfully", entity, nil), nil
}

func (c *crud[T]) save(ctx context.Context, entity *T, conflictMessage string) (response.Envelope, error) {
	id := c.idOf(entity)
	if err := c.repo.Save(ctx, entity); err != nil {
		return response.Envelope{}, c.failWrite("update", c.translateWriteError("update", err, conflictMessage))
	}
	if err := c.inval.AfterUpdate(ctx, c.names.namespace, id); err != nil {
		return response.Envelope{}, c.failWrite("update", err)
	}

	c.recordWrite("update", writeSuccess)
	c.log.Info("updated", zap.String("id", id))
	return response.Success(c.names.singular+" updated successfully", entity, nil), nil
}

func (c *crud[T]) remove(ctx context.Context, id string) (response.Envelope, error) {
	if _, err := c.mustFind(ctx, id); err != nil {
		return response.Envelope{}, c.failWrite("remove", err)
	}
	if err := c.inval.BeforeRemove(ctx, c.names.namespace, id); err != nil {
		return response.Envelope{}, c.failWrite("remove", err)
	}
	if err := c.repo.SoftDelete(ctx, id); err != nil {
		return response.Envelope{}, c.failWrite("remove", fmt.Errorf("%s service: remove %s: %w", c.names.entity, id, err))
	}
	if err := c.inval.AfterRemove(ctx, c.names.namespace, id); err != nil {
		return response.Envelope{}, c.failWrite("remove", err)
	}

	c.recordWrite("remove", writeSuccess)
	c.log.Info("removed", zap.String("id", id))
	return response.Success(c.names.singular+" deleted successfully", map[string]string{"id": id}, nil), nil
}

func (c *crud[T]) translateWriteError(operation string, err error, conflictMessage string) error {
	if isUniqueConstraintError(err) {
		return appErrors.Conflict(conflictMessage).WithInternal(err)
	}
	return fmt.Errorf("%s service: %s: %w", c.names.entity, operation, err)
}

// failWrite records the failed write and returns err unchanged.
func (c *crud[T]) failWrite(operation string, err error) error {
	result := writeError
	switch {
	case appErrors.IsConflict(err):
		result = writeConflict
	case appErrors.IsNotFound(err):
		result = writeNotFound
	}
	c.recordWrite(operation, result)
	if result == writeError {
		c.log.Error(operation+" failed", zap.Error(err))
	}
	return err
}

func (c *crud[T]) recordWrite(operation, result string) {
	monitoring.RecordCatalogWrite(c.names.entity, operation, result)
}

// referenceCheck verifies that id exists in repo, failing with NotFound(message) otherwise.
func referenceCheck[T any](ctx context.Context, repo repository.Repository[T], id, message string) error {
	exists, err := repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check reference %s: %w", id, err)
	}
	if !exists {
		return appErrors.NotFound(message)
	}
	return nil
}

var errNilRepository = errors.New("repository is required")

func fmtServiceError(service string, err error) error {
	return fmt.Errorf("%s service: %w", service, err)
}
