package api

import "github.com/gin-gonic/gin"

// crudHandler is the surface shared by every catalog entity handler.
type crudHandler interface {
	Index(c *gin.Context)
	Show(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Destroy(c *gin.Context)
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *catalogHandlers) {
	registerCRUD(v1.Group("/company"), h.companies)
	registerCRUD(v1.Group("/category"), h.categories)
	registerCRUD(v1.Group("/sub-category"), h.subcategories)
	registerCRUD(v1.Group("/product"), h.products)
}

func registerCRUD(group *gin.RouterGroup, h crudHandler) {
	group.GET("/index", h.Index)
	group.GET("/show/:id", h.Show)
	group.POST("/create", h.Create)
	group.PUT("/update/:id", h.Update)
	group.PATCH("/update/:id", h.Update)
	group.DELETE("/destroy/:id", h.Destroy)
}
