package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/catalog/internal/models"
	"github.com/charlesng35/catalog/internal/services"
)

// SubcategoryHandler exposes subcategory CRUD endpoints.
type SubcategoryHandler struct {
	svc *services.SubcategoryService
}

// NewSubcategoryHandler constructs a subcategory handler.
func NewSubcategoryHandler(svc *services.SubcategoryService) *SubcategoryHandler {
	return &SubcategoryHandler{svc: svc}
}

type createSubcategoryRequest struct {
	Name       string  `json:"name" validate:"required,notblank,max=64"`
	CategoryID *string `json:"categoryId" validate:"omitempty,max=36"`
}

// updateSubcategoryRequest accepts an empty categoryId to detach the subcategory,
// so the reference is checked for existence rather than format.
type updateSubcategoryRequest struct {
	Name       *string        `json:"name" validate:"omitempty,notblank,max=64"`
	CategoryID *string        `json:"categoryId" validate:"omitempty,max=36"`
	Status     *models.Status `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// Index handles GET /api/v1/sub-category/index
func (h *SubcategoryHandler) Index(c *gin.Context) {
	env, err := h.svc.List(c.Request.Context(), listOptions(c))
	replyOK(c, env, err)
}

// Show handles GET /api/v1/sub-category/show/:id
func (h *SubcategoryHandler) Show(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	env, err := h.svc.Get(c.Request.Context(), id)
	replyOK(c, env, err)
}

// Create handles POST /api/v1/sub-category/create
func (h *SubcategoryHandler) Create(c *gin.Context) {
	var req createSubcategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	env, err := h.svc.Create(c.Request.Context(), services.CreateSubcategoryInput{Name: req.Name, CategoryID: req.CategoryID})
	replyCreated(c, env, err)
}

// Update handles PUT /api/v1/sub-category/update/:id
func (h *SubcategoryHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req updateSubcategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	env, err := h.svc.Update(c.Request.Context(), id, services.UpdateSubcategoryInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Status:     req.Status,
	})
	replyOK(c, env, err)
}

// Destroy handles DELETE /api/v1/sub-category/destroy/:id
func (h *SubcategoryHandler) Destroy(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	env, err := h.svc.Remove(c.Request.Context(), id)
	replyOK(c, env, err)
}
