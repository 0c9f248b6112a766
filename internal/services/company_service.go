package services

import (
	"context"
	"strings"

	"github.com/charlesng35/catalog/internal/cache"
	"github.com/charlesng35/catalog/internal/models"
	"github.com/charlesng35/catalog/internal/repository"
	"github.com/charlesng35/catalog/pkg/response"
)

const companyConflict = "Company with this name already exists."

// CompanyService manages companies.
type CompanyService struct {
	crud[models.Company]
}

// CreateCompanyInput captures the fields of a new company.
type CreateCompanyInput struct {
	Name    string
	Address string
	Phone   string
	Website string
}

// UpdateCompanyInput describes mutable company fields. A nil pointer indicates no change.
type UpdateCompanyInput struct {
	Name    *string
	Address *string
	Phone   *string
	Website *string
	Status  *models.Status
}

// NewCompanyService constructs a company service.
func NewCompanyService(companies repository.Repository[models.Company], deps CacheDeps) (*CompanyService, error) {
	if companies == nil {
		return nil, fmtServiceError("company", errNilRepository)
	}
	if err := deps.validate("company"); err != nil {
		return nil, err
	}
	names := entityNames{entity: "company", namespace: NamespaceCompanies, singular: "Company", plural: "Companies"}
	return &CompanyService{crud: newCrud(names, companies, deps, companyID)}, nil
}

func companyID(c *models.Company) string { return c.ID }

// List returns one page of active companies.
func (s *CompanyService) List(ctx context.Context, opts ListOptions) (response.Envelope, error) {
	return s.list(ctx,
		cache.PageQuery{Filter: cache.FilterActive, Page: opts.Page, Limit: opts.Limit},
		repository.Filter{Status: models.StatusActive},
	)
}

// Get returns a single company.
func (s *CompanyService) Get(ctx context.Context, id string) (response.Envelope, error) {
	return s.show(ctx, id)
}

// Create inserts a company after checking its name is free.
func (s *CompanyService) Create(ctx context.Context, input CreateCompanyInput) (response.Envelope, error) {
	name := strings.TrimSpace(input.Name)
	if err := s.ensureUnique(ctx, "name", name, "", companyConflict); err != nil {
		return response.Envelope{}, s.failWrite("create", err)
	}

	company := &models.Company{
		Name:    name,
		Address: strings.TrimSpace(input.Address),
		Phone:   strings.TrimSpace(input.Phone),
		Website: strings.TrimSpace(input.Website),
		Status:  models.StatusActive,
	}
	return s.create(ctx, company, companyConflict)
}

// Update merges the supplied fields into an existing company.
func (s *CompanyService) Update(ctx context.Context, id string, input UpdateCompanyInput) (response.Envelope, error) {
	company, err := s.mustFind(ctx, id)
	if err != nil {
		return response.Envelope{}, s.failWrite("update", err)
	}

	if name := trimmed(input.Name); name != nil && *name != company.Name {
		if err := s.ensureUnique(ctx, "name", *name, company.ID, companyConflict); err != nil {
			return response.Envelope{}, s.failWrite("update", err)
		}
		company.Name = *name
	}
	if v := trimmed(input.Address); v != nil {
		company.Address = *v
	}
	if v := trimmed(input.Phone); v != nil {
		company.Phone = *v
	}
	if v := trimmed(input.Website); v != nil {
		company.Website = *v
	}
	if input.Status != nil {
		company.Status = *input.Status
	}

	return s.save(ctx, company, companyConflict)
}

// Remove soft-deletes a company.
func (s *CompanyService) Remove(ctx context.Context, id string) (response.Envelope, error) {
	return s.remove(ctx, id)
}
