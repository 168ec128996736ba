package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs mounts the Swagger UI
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListProducts godoc
// @Summary List products
// @Description List products with category/search/price/rating filters, sorting and pagination
// @Tags Catalog
// @Produce json
// @Param categoria query string false "Category filter (substring match)"
// @Param q query string false "Search term"
// @Param min_price query number false "Minimum price (inclusive)"
// @Param max_price query number false "Maximum price (inclusive)"
// @Param min_rating query number false "Minimum rating"
// @Param sort query string false "Sort order (price_asc, price_desc, rating_desc, sales_desc, featured)"
// @Param limit query int false "Limit"
// @Param skip query int false "Skip"
// @Success 200 {object} object{success=bool,data=object{products=array,total=int}}
// @Router /productos [get]
func (h *CatalogHandler) ListProductsDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /productos/{id} [get]
func (h *CatalogHandler) GetProductDoc() {}

// ListCategories godoc
// @Summary List product categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /productos/categorias [get]
func (h *CatalogHandler) ListCategoriesDoc() {}

// SearchProducts godoc
// @Summary Search products
// @Description Case-insensitive substring search over title, description and category
// @Tags Catalog
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} object{success=bool,data=object{products=array,total=int}}
// @Router /productos/buscar [get]
func (h *CatalogHandler) SearchProductsDoc() {}
