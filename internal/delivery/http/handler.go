package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/annai/backend/internal/domain"
	"github.com/annai/backend/internal/usecase"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *usecase.CatalogService
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *usecase.CatalogService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		catalog: catalog,
		logger:  logger.Named("http"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	templates := 0
	if h.catalog != nil {
		templates = len(h.catalog.Templates())
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "catalog-backend",
		"version":   Version,
		"templates": templates,
	})
}

// SearchProducts handles GET /api/products/?q=
// The response is always 200 with a JSON array; queries without a catalog
// get an empty array.
func (h *Handler) SearchProducts(c *gin.Context) {
	if h.catalog == nil {
		c.JSON(http.StatusOK, []domain.Product{})
		return
	}

	query := c.Query("q")
	products, err := h.catalog.SearchProducts(c.Request.Context(), query)
	if err != nil {
		h.logger.Warn("product search aborted",
			zap.String("query", query),
			zap.Error(err))
		products = []domain.Product{}
	}

	c.JSON(http.StatusOK, products)
}

// ListTemplates handles GET /api/templates/
func (h *Handler) ListTemplates(c *gin.Context) {
	views := []domain.TemplateView{}
	if h.catalog != nil {
		for _, tmpl := range h.catalog.Templates() {
			views = append(views, tmpl.View())
		}
	}

	c.JSON(http.StatusOK, views)
}
