package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charlesng35/catalog/internal/app"
	"github.com/charlesng35/catalog/internal/handlers"
	"github.com/charlesng35/catalog/internal/middleware"
	"github.com/charlesng35/catalog/internal/models"
	"github.com/charlesng35/catalog/internal/monitoring"
	"github.com/charlesng35/catalog/internal/repository"
	"github.com/charlesng35/catalog/internal/services"
)

// Dependencies bundles everything the router needs to build its handlers.
type Dependencies struct {
	DB      *gorm.DB
	Config  *app.Config
	Cache   *app.CacheRuntime
	Monitor *monitoring.Module
}

// NewRouter builds the Gin engine, wires middleware and registers the catalog routes under /api/v1.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if deps.Config == nil {
		return nil, fmt.Errorf("config must be provided")
	}
	if deps.Cache == nil || deps.Cache.Reader == nil || deps.Cache.Invalidator == nil {
		return nil, fmt.Errorf("cache runtime must be provided")
	}

	cfg := deps.Config
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORSOrigin))

	registerHealthRoutes(r, cfg, deps.Monitor)
	registerMetricsRoute(r, cfg, deps.Monitor)

	catalog, err := newCatalogHandlers(deps)
	if err != nil {
		return nil, err
	}

	v1 := r.Group("/api/v1")
	registerCatalogRoutes(v1, catalog)
	registerMonitoringRoutes(v1, handlers.NewMonitoringHandler(deps.Monitor, cfg))

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}

type catalogHandlers struct {
	companies     *handlers.CompanyHandler
	categories    *handlers.CategoryHandler
	subcategories *handlers.SubcategoryHandler
	products      *handlers.ProductHandler
}

func newCatalogHandlers(deps Dependencies) (*catalogHandlers, error) {
	cacheDeps := services.CacheDeps{
		Reader:      deps.Cache.Reader,
		Invalidator: deps.Cache.Invalidator,
	}

	companies := repository.New[models.Company](deps.DB)
	categories := repository.New[models.Category](deps.DB)
	subcategories := repository.New[models.Subcategory](deps.DB)
	products := repository.New[models.Product](deps.DB)

	companySvc, err := services.NewCompanyService(companies, cacheDeps)
	if err != nil {
		return nil, err
	}
	categorySvc, err := services.NewCategoryService(categories, cacheDeps)
	if err != nil {
		return nil, err
	}
	subcategorySvc, err := services.NewSubcategoryService(subcategories, categories, cacheDeps)
	if err != nil {
		return nil, err
	}
	productSvc, err := services.NewProductService(services.ProductRepositories{
		Products:      products,
		Companies:     companies,
		Categories:    categories,
		Subcategories: subcategories,
	}, cacheDeps)
	if err != nil {
		return nil, err
	}

	return &catalogHandlers{
		companies:     handlers.NewCompanyHandler(companySvc),
		categories:    handlers.NewCategoryHandler(categorySvc),
		subcategories: handlers.NewSubcategoryHandler(subcategorySvc),
		products:      handlers.NewProductHandler(productSvc),
	}, nil
}

func registerMetricsRoute(r *gin.Engine, cfg *app.Config, mon *monitoring.Module) {
	if mon == nil || !cfg.Monitoring.Prometheus.Enabled {
		return
	}
	endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
	if endpoint == "" {
		endpoint = "/metrics"
	}
	r.GET(endpoint, gin.WrapH(mon.Handler()))
}
