package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/catalog/internal/models"
	"github.com/charlesng35/catalog/internal/services"
	appErrors "github.com/charlesng35/catalog/pkg/errors"
	"github.com/charlesng35/catalog/pkg/response"
)

const maxBarcodeLength = 64

// ProductHandler exposes product CRUD endpoints.
type ProductHandler struct {
	svc *services.ProductService
}

// NewProductHandler constructs a product handler.
func NewProductHandler(svc *services.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type createProductRequest struct {
	Name          string   `json:"name" validate:"required,notblank,max=255"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Barcode       string   `json:"barcode" validate:"required,notblank,max=64"`
	StockQuantity *int     `json:"stockQuantity" validate:"required,gte=0"`
	CompanyID     string   `json:"companyId" validate:"required,uuid"`
	CategoryID    string   `json:"categoryId" validate:"required,uuid"`
	SubcategoryID *string  `json:"subcategoryId" validate:"omitempty,max=36"`
}

type updateProductRequest struct {
	Name          *string        `json:"name" validate:"omitempty,notblank,max=255"`
	Description   *string        `json:"description"`
	Price         *float64       `json:"price" validate:"omitempty,gte=0"`
	Barcode       *string        `json:"barcode" validate:"omitempty,notblank,max=64"`
	StockQuantity *int           `json:"stockQuantity" validate:"omitempty,gte=0"`
	CompanyID     *string        `json:"companyId" validate:"omitempty,uuid"`
	CategoryID    *string        `json:"categoryId" validate:"omitempty,uuid"`
	SubcategoryID *string        `json:"subcategoryId" validate:"omitempty,max=36"`
	Status        *models.Status `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// Index handles GET /api/v1/product/index?page&limit&barcode
func (h *ProductHandler) Index(c *gin.Context) {
	opts := listOptions(c)
	barcode := strings.TrimSpace(c.Query("barcode"))
	if len(barcode) > maxBarcodeLength {
		response.Error(c, appErrors.NewBadRequest("barcode must be at most 64 characters"))
		return
	}

	env, err := h.svc.List(c.Request.Context(), services.ListProductsOptions{
		Page:    opts.Page,
		Limit:   opts.Limit,
		Barcode: barcode,
	})
	replyOK(c, env, err)
}

// Show handles GET /api/v1/product/show/:id
func (h *ProductHandler) Show(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	env, err := h.svc.Get(c.Request.Context(), id)
	replyOK(c, env, err)
}

// Create handles POST /api/v1/product/create
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if !bindAndValidate(c, &req) {
		return
	}

	env, err := h.svc.Create(c.Request.Context(), services.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		Barcode:       req.Barcode,
		StockQuantity: *req.StockQuantity,
		CompanyID:     req.CompanyID,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
	})
	replyCreated(c, env, err)
}

// Update handles PUT /api/v1/product/update/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req updateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}

	env, err := h.svc.Update(c.Request.Context(), id, services.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Barcode:       req.Barcode,
		StockQuantity: req.StockQuantity,
		CompanyID:     req.CompanyID,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Status:        req.Status,
	})
	replyOK(c, env, err)
}

// Destroy handles DELETE /api/v1/product/destroy/:id
func (h *ProductHandler) Destroy(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	env, err := h.svc.Remove(c.Request.Context(), id)
	replyOK(c, env, err)
}
