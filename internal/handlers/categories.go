package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/catalog/internal/models"
	"github.com/charlesng35/catalog/internal/services"
)

// CategoryHandler exposes category CRUD endpoints.
type CategoryHandler struct {
	svc *services.CategoryService
}

// NewCategoryHandler constructs a category handler.
func NewCategoryHandler(svc *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=64"`
}

type updateCategoryRequest struct {
	Name   *string        `json:"name" validate:"omitempty,notblank,max=64"`
	Status *models.Status `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// Index handles GET /api/v1/category/index
func (h *CategoryHandler) Index(c *gin.Context) {
	env, err := h.svc.List(c.Request.Context(), listOptions(c))
	replyOK(c, env, err)
}

// Show handles GET /api/v1/category/show/:id
func (h *CategoryHandler) Show(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	env, err := h.svc.Get(c.Request.Context(), id)
	replyOK(c, env, err)
}

// Create handles POST /api/v1/category/create
func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	env, err := h.svc.Create(c.Request.Context(), services.CreateCategoryInput{Name: req.Name})
	replyCreated(c, env, err)
}

// Update handles PUT /api/v1/category/update/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req updateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	env, err := h.svc.Update(c.Request.Context(), id, services.UpdateCategoryInput{Name: req.Name, Status: req.Status})
	replyOK(c, env, err)
}

// Destroy handles DELETE /api/v1/category/destroy/:id
func (h *CategoryHandler) Destroy(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	env, err := h.svc.Remove(c.Request.Context(), id)
	replyOK(c, env, err)
}
