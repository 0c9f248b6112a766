package services

import (
	"context"
	"strings"

	"github.com/charlesng35/catalog/internal/cache"
	"github.com/charlesng35/catalog/internal/models"
	"github.com/charlesng35/catalog/internal/repository"
	"github.com/charlesng35/catalog/pkg/response"
)

const categoryConflict = "Category with this name already exists."

// CategoryService manages top level categories.
type CategoryService struct {
	crud[models.Category]
}

// CreateCategoryInput captures the fields of a new category.
type CreateCategoryInput struct {
	Name string
}

// UpdateCategoryInput describes mutable category fields. A nil pointer indicates no change.
type UpdateCategoryInput struct {
	Name   *string
	Status *models.Status
}

// NewCategoryService constructs a category service.
func NewCategoryService(categories repository.Repository[models.Category], deps CacheDeps) (*CategoryService, error) {
	if categories == nil {
		return nil, fmtServiceError("category", errNilRepository)
	}
	if err := deps.validate("category"); err != nil {
		return nil, err
	}
	names := entityNames{entity: "category", namespace: NamespaceCategories, singular: "Category", plural: "Categories"}
	return &CategoryService{crud: newCrud(names, categories, deps, categoryID)}, nil
}

func categoryID(c *models.Category) string { return c.ID }

// List returns one page of active categories.
func (s *CategoryService) List(ctx context.Context, opts ListOptions) (response.Envelope, error) {
	return s.list(ctx,
		cache.PageQuery{Filter: cache.FilterActive, Page: opts.Page, Limit: opts.Limit},
		repository.Filter{Status: models.StatusActive},
	)
}

// Get returns a single category.
func (s *CategoryService) Get(ctx context.Context, id string) (response.Envelope, error) {
	return s.show(ctx, id)
}

// Create inserts a category after checking its name is free.
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (response.Envelope, error) {
	name := strings.TrimSpace(input.Name)
	if err := s.ensureUnique(ctx, "name", name, "", categoryConflict); err != nil {
		return response.Envelope{}, s.failWrite("create", err)
	}
	return s.create(ctx, &models.Category{Name: name, Status: models.StatusActive}, categoryConflict)
}

// Update merges the supplied fields into an existing category.
func (s *CategoryService) Update(ctx context.Context, id string, input UpdateCategoryInput) (response.Envelope, error) {
	category, err := s.mustFind(ctx, id)
	if err != nil {
		return response.Envelope{}, s.failWrite("update", err)
	}

	if name := trimmed(input.Name); name != nil && *name != category.Name {
		if err := s.ensureUnique(ctx, "name", *name, category.ID, categoryConflict); err != nil {
			return response.Envelope{}, s.failWrite("update", err)
		}
		category.Name = *name
	}
	if input.Status != nil {
		category.Status = *input.Status
	}

	return s.save(ctx, category, categoryConflict)
}

// Remove soft-deletes a category.
func (s *CategoryService) Remove(ctx context.Context, id string) (response.Envelope, error) {
	return s.remove(ctx, id)
}
