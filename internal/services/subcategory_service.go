package services

import (
	"context"
	"strings"

	"github.com/charlesng35/catalog/internal/cache"
	"github.com/charlesng35/catalog/internal/models"
	"github.com/charlesng35/catalog/internal/repository"
	"github.com/charlesng35/catalog/pkg/response"
)

const subcategoryConflict = "Subcategory with this name already exists."

// SubcategoryService manages subcategories and their optional parent category.
type SubcategoryService struct {
	crud[models.Subcategory]
	categories repository.Repository[models.Category]
}

// CreateSubcategoryInput captures the fields of a new subcategory.
type CreateSubcategoryInput struct {
	Name       string
	CategoryID *string
}

// UpdateSubcategoryInput describes mutable subcategory fields. A nil pointer indicates no change.
type UpdateSubcategoryInput struct {
	Name       *string
	CategoryID *string
	Status     *models.Status
}

// NewSubcategoryService constructs a subcategory service.
func NewSubcategoryService(
	subcategories repository.Repository[models.Subcategory],
	categories repository.Repository[models.Category],
	deps CacheDeps,
) (*SubcategoryService, error) {
	if subcategories == nil || categories == nil {
		return nil, fmtServiceError("subcategory", errNilRepository)
	}
	if err := deps.validate("subcategory"); err != nil {
		return nil, err
	}
	names := entityNames{entity: "subcategory", namespace: NamespaceSubcategories, singular: "Subcategory", plural: "Subcategories"}
	return &SubcategoryService{
		crud:       newCrud(names, subcategories, deps, subcategoryID, "Category"),
		categories: categories,
	}, nil
}

func subcategoryID(s *models.Subcategory) string { return s.ID }

// List returns one page of active subcategories.
func (s *SubcategoryService) List(ctx context.Context, opts ListOptions) (response.Envelope, error) {
	return s.list(ctx,
		cache.PageQuery{Filter: cache.FilterActive, Page: opts.Page, Limit: opts.Limit},
		repository.Filter{Status: models.StatusActive},
	)
}

// Get returns a single subcategory with its parent category.
func (s *SubcategoryService) Get(ctx context.Context, id string) (response.Envelope, error) {
	return s.show(ctx, id)
}

// Create inserts a subcategory after checking its name is free and its category exists.
func (s *SubcategoryService) Create(ctx context.Context, input CreateSubcategoryInput) (response.Envelope, error) {
	name := strings.TrimSpace(input.Name)
	if err := s.ensureUnique(ctx, "name", name, "", subcategoryConflict); err != nil {
		return response.Envelope{}, s.failWrite("create", err)
	}

	categoryRef := optionalID(input.CategoryID)
	if err := s.checkCategory(ctx, categoryRef); err != nil {
		return response.Envelope{}, s.failWrite("create", err)
	}

	subcategory := &models.Subcategory{Name: name, CategoryID: categoryRef, Status: models.StatusActive}
	return s.create(ctx, subcategory, subcategoryConflict)
}

// Update merges the supplied fields into an existing subcategory.
func (s *SubcategoryService) Update(ctx context.Context, id string, input UpdateSubcategoryInput) (response.Envelope, error) {
	subcategory, err := s.mustFind(ctx, id)
	if err != nil {
		return response.Envelope{}, s.failWrite("update", err)
	}

	if name := trimmed(input.Name); name != nil && *name != subcategory.Name {
		if err := s.ensureUnique(ctx, "name", *name, subcategory.ID, subcategoryConflict); err != nil {
			return response.Envelope{}, s.failWrite("update", err)
		}
		subcategory.Name = *name
	}
	if input.CategoryID != nil {
		categoryRef := optionalID(input.CategoryID)
		if err := s.checkCategory(ctx, categoryRef); err != nil {
			return response.Envelope{}, s.failWrite("update", err)
		}
		subcategory.CategoryID = categoryRef
	}
	if input.Status != nil {
		subcategory.Status = *input.Status
	}

	return s.save(ctx, subcategory, subcategoryConflict)
}

// Remove soft-deletes a subcategory.
func (s *SubcategoryService) Remove(ctx context.Context, id string) (response.Envelope, error) {
	return s.remove(ctx, id)
}

func (s *SubcategoryService) checkCategory(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	return referenceCheck(ctx, s.categories, *id, "Category with the provided ID does not exist")
}
