package services

import (
	"context"
	"strings"

	"github.com/charlesng35/catalog/internal/cache"
	"github.com/charlesng35/catalog/internal/models"
	"github.com/charlesng35/catalog/internal/repository"
	"github.com/charlesng35/catalog/pkg/response"
)

const (
	productNameConflict    = "Product with this name already exists."
	productBarcodeConflict = "Product with this barcode already exists."
)

var productAssociations = []string{"Company", "Category", "Subcategory"}

// ProductRepositories groups the repositories a product write has to consult.
type ProductRepositories struct {
	Products      repository.Repository[models.Product]
	Companies     repository.Repository[models.Company]
	Categories    repository.Repository[models.Category]
	Subcategories repository.Repository[models.Subcategory]
}

// ProductService manages products and validates their references.
type ProductService struct {
	crud[models.Product]
	repos ProductRepositories
}

// ListProductsOptions selects one page of products, optionally narrowed by a barcode fragment.
type ListProductsOptions struct {
	Page    int
	Limit   int
	Barcode string
}

// CreateProductInput captures the fields of a new product.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         float64
	Barcode       string
	StockQuantity int
	CompanyID     string
	CategoryID    string
	SubcategoryID *string
}

// UpdateProductInput describes mutable product fields. A nil pointer indicates no change.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *float64
	Barcode       *string
	StockQuantity *int
	CompanyID     *string
	CategoryID    *string
	SubcategoryID *string
	Status        *models.Status
}

// NewProductService constructs a product service.
func NewProductService(repos ProductRepositories, deps CacheDeps) (*ProductService, error) {
	if repos.Products == nil || repos.Companies == nil || repos.Categories == nil || repos.Subcategories == nil {
		return nil, fmtServiceError("product", errNilRepository)
	}
	if err := deps.validate("product"); err != nil {
		return nil, err
	}
	names := entityNames{entity: "product", namespace: NamespaceProducts, singular: "Product", plural: "Products"}
	return &ProductService{
		crud:  newCrud(names, repos.Products, deps, productID, productAssociations...),
		repos: repos,
	}, nil
}

func productID(p *models.Product) string { return p.ID }

// List returns one page of products of any status with their company, category and
// subcategory. A non-empty barcode restricts the page to barcodes containing it.
func (s *ProductService) List(ctx context.Context, opts ListProductsOptions) (response.Envelope, error) {
	barcode := strings.TrimSpace(opts.Barcode)

	empty := "No products found"
	if barcode != "" {
		empty = "No products found with barcode: " + barcode
	}

	return s.list(ctx,
		cache.PageQuery{
			Filter:       cache.FilterAll,
			Page:         opts.Page,
			Limit:        opts.Limit,
			Extras:       map[string]string{"barcode": barcode},
			EmptyMessage: empty,
		},
		repository.Filter{
			Contains: map[string]string{"barcode": barcode},
			Preload:  productAssociations,
		},
	)
}

// Get returns a single product with its associations.
func (s *ProductService) Get(ctx context.Context, id string) (response.Envelope, error) {
	return s.show(ctx, id)
}

// Create inserts a product. Name and barcode must be free, and every referenced row must exist.
// All checks complete before anything is written.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (response.Envelope, error) {
	name := strings.TrimSpace(input.Name)
	barcode := strings.TrimSpace(input.Barcode)

	if err := s.ensureUnique(ctx, "name", name, "", productNameConflict); err != nil {
		return response.Envelope{}, s.failWrite("create", err)
	}
	if err := s.ensureUnique(ctx, "barcode", barcode, "", productBarcodeConflict); err != nil {
		return response.Envelope{}, s.failWrite("create", err)
	}

	companyRef := strings.TrimSpace(input.CompanyID)
	categoryRef := strings.TrimSpace(input.CategoryID)
	subcategoryRef := optionalID(input.SubcategoryID)
	if err := s.checkReferences(ctx, &categoryRef, &companyRef, subcategoryRef); err != nil {
		return response.Envelope{}, s.failWrite("create", err)
	}

	product := &models.Product{
		Name:          name,
		Description:   input.Description,
		Price:         input.Price,
		Barcode:       barcode,
		Status:        models.StatusActive,
		StockQuantity: input.StockQuantity,
		CompanyID:     companyRef,
		CategoryID:    categoryRef,
		SubcategoryID: subcategoryRef,
	}
	return s.create(ctx, product, productNameConflict)
}

// Update merges the supplied fields into an existing product, re-validating changed references.
func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput) (response.Envelope, error) {
	product, err := s.mustFind(ctx, id)
	if err != nil {
		return response.Envelope{}, s.failWrite("update", err)
	}

	if name := trimmed(input.Name); name != nil && *name != product.Name {
		if err := s.ensureUnique(ctx, "name", *name, product.ID, productNameConflict); err != nil {
			return response.Envelope{}, s.failWrite("update", err)
		}
		product.Name = *name
	}
	if barcode := trimmed(input.Barcode); barcode != nil && *barcode != product.Barcode {
		if err := s.ensureUnique(ctx, "barcode", *barcode, product.ID, productBarcodeConflict); err != nil {
			return response.Envelope{}, s.failWrite("update", err)
		}
		product.Barcode = *barcode
	}

	categoryRef := optionalID(input.CategoryID)
	companyRef := optionalID(input.CompanyID)
	subcategoryRef := optionalID(input.SubcategoryID)
	if err := s.checkReferences(ctx, categoryRef, companyRef, subcategoryRef); err != nil {
		return response.Envelope{}, s.failWrite("update", err)
	}
	if categoryRef != nil {
		product.CategoryID = *categoryRef
	}
	if companyRef != nil {
		product.CompanyID = *companyRef
	}
	if input.SubcategoryID != nil {
		product.SubcategoryID = subcategoryRef
	}

	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.Status != nil {
		product.Status = *input.Status
	}

	return s.save(ctx, product, productNameConflict)
}

// Remove soft-deletes a product.
func (s *ProductService) Remove(ctx context.Context, id string) (response.Envelope, error) {
	return s.remove(ctx, id)
}

// checkReferences validates category, company and subcategory in that order. Nil ids are skipped.
func (s *ProductService) checkReferences(ctx context.Context, categoryID, companyID, subcategoryID *string) error {
	if categoryID != nil {
		if err := referenceCheck(ctx, s.repos.Categories, *categoryID, "Category with the provided ID does not exist"); err != nil {
			return err
		}
	}
	if companyID != nil {
		if err := referenceCheck(ctx, s.repos.Companies, *companyID, "Company with the provided ID does not exist"); err != nil {
			return err
		}
	}
	if subcategoryID != nil {
		if err := referenceCheck(ctx, s.repos.Subcategories, *subcategoryID, "Subcategory with the provided ID does not exist"); err != nil {
			return err
		}
	}
	return nil
}
