package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/catalog/internal/models"
	"github.com/charlesng35/catalog/internal/services"
)

// CompanyHandler exposes company CRUD endpoints.
type CompanyHandler struct {
	svc *services.CompanyService
}

// NewCompanyHandler constructs a company handler.
func NewCompanyHandler(svc *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

type createCompanyRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=128"`
	Address string `json:"address" validate:"omitempty,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=64"`
	Website string `json:"website" validate:"omitempty,max=128"`
}

type updateCompanyRequest struct {
	Name    *string        `json:"name" validate:"omitempty,notblank,max=128"`
	Address *string        `json:"address" validate:"omitempty,max=255"`
	Phone   *string        `json:"phone" validate:"omitempty,max=64"`
	Website *string        `json:"website" validate:"omitempty,max=128"`
	Status  *models.Status `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// Index handles GET /api/v1/company/index
func (h *CompanyHandler) Index(c *gin.Context) {
	env, err := h.svc.List(c.Request.Context(), listOptions(c))
	replyOK(c, env, err)
}

// Show handles GET /api/v1/company/show/:id
func (h *CompanyHandler) Show(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	env, err := h.svc.Get(c.Request.Context(), id)
	replyOK(c, env, err)
}

// Create handles POST /api/v1/company/create
func (h *CompanyHandler) Create(c *gin.Context) {
	var req createCompanyRequest
	if !bindAndValidate(c, &req) {
		return
	}

	env, err := h.svc.Create(c.Request.Context(), services.CreateCompanyInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Website: req.Website,
	})
	replyCreated(c, env, err)
}

// Update handles PUT /api/v1/company/update/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req updateCompanyRequest
	if !bindAndValidate(c, &req) {
		return
	}

	env, err := h.svc.Update(c.Request.Context(), id, services.UpdateCompanyInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Website: req.Website,
		Status:  req.Status,
	})
	replyOK(c, env, err)
}

// Destroy handles DELETE /api/v1/company/destroy/:id
func (h *CompanyHandler) Destroy(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	env, err := h.svc.Remove(c.Request.Context(), id)
	replyOK(c, env, err)
}
