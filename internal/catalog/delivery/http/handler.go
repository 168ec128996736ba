package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/studimarket/storefront/internal/catalog/domain"
	"github.com/studimarket/storefront/internal/catalog/usecase/command"
	"github.com/studimarket/storefront/internal/catalog/usecase/query"
	"github.com/studimarket/storefront/internal/middleware"
)

// CatalogHandler handles HTTP requests for the product catalog
type CatalogHandler struct {
	// Command handlers
	createHandler      *command.CreateProductHandler
	updateHandler      *command.UpdateProductHandler
	deleteHandler      *command.DeleteProductHandler
	adjustStockHandler *command.AdjustStockHandler

	// Query handlers
	getHandler        *query.GetProductHandler
	listHandler       *query.ListProductsHandler
	categoriesHandler *query.ListCategoriesHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalProducts  prometheus.Gauge
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(repo domain.ProductRepository) *CatalogHandler {
	return NewCatalogHandlerWithDI(
		command.NewCreateProductHandler(repo),
		command.NewUpdateProductHandler(repo),
		command.NewDeleteProductHandler(repo),
		command.NewAdjustStockHandler(repo),
		query.NewGetProductHandler(repo),
		query.NewListProductsHandler(repo),
		query.NewListCategoriesHandler(repo),
	)
}

// NewCatalogHandlerWithDI creates a new catalog handler from pre-built
// command and query handlers. Used by Wire.
func NewCatalogHandlerWithDI(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	adjustStockHandler *command.AdjustStockHandler,
	getHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	categoriesHandler *query.ListCategoriesHandler,
) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of requests to the catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_total_products",
			Help: "Total number of products in the catalog",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalProducts)

	return &CatalogHandler{
		createHandler:      createHandler,
		updateHandler:      updateHandler,
		deleteHandler:      deleteHandler,
		adjustStockHandler: adjustStockHandler,
		getHandler:         getHandler,
		listHandler:        listHandler,
		categoriesHandler:  categoriesHandler,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
		totalProducts:      totalProducts,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// productView is the API shape of a product, with the nested rating object
type productView struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Stock       int           `json:"stock"`
	Category    string        `json:"category"`
	Image       string        `json:"image"`
	Rating      domain.Rating `json:"rating"`
	Featured    bool          `json:"featured"`
}

func toProductView(p domain.Product) productView {
	return productView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Image:       p.Image,
		Rating:      p.Rating(),
		Featured:    p.Featured,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/productos/categorias", h.metricsMiddleware("/productos/categorias", h.ListCategories)).Methods("GET")
	router.HandleFunc("/productos/buscar", h.metricsMiddleware("/productos/buscar", h.SearchProducts)).Methods("GET")
	router.HandleFunc("/productos", h.metricsMiddleware("/productos", h.ListProducts)).Methods("GET")
	router.HandleFunc("/productos/{id}", h.metricsMiddleware("/productos/{id}", h.GetProduct)).Methods("GET")

	// Admin routes
	router.HandleFunc("/productos", h.metricsMiddleware("/productos", middleware.AdminMiddleware(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/productos/{id}", h.metricsMiddleware("/productos/{id}", middleware.AdminMiddleware(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/productos/{id}", h.metricsMiddleware("/productos/{id}", middleware.AdminMiddleware(h.DeleteProduct))).Methods("DELETE")
	router.HandleFunc("/productos/{id}/stock", h.metricsMiddleware("/productos/{id}/stock", middleware.AdminMiddleware(h.UpdateStock))).Methods("PATCH")
}

// filterSpecFromQuery builds a FilterSpec from request query parameters.
// Missing bounds widen to the whole catalog; malformed numbers are ignored.
func filterSpecFromQuery(r *http.Request) domain.FilterSpec {
	q := r.URL.Query()

	spec := domain.DefaultFilterSpec()
	spec.Category = q.Get("categoria")
	if spec.Category == "" {
		spec.Category = q.Get("category")
	}
	spec.Search = q.Get("q")
	if spec.Search == "" {
		spec.Search = q.Get("search")
	}
	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		spec.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		spec.MaxPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("min_rating"), 64); err == nil {
		spec.MinRating = v
	}
	spec.Sort = q.Get("sort")
	return spec
}

// ListProducts handles GET /productos
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	skip, _ := strconv.Atoi(q.Get("skip"))

	result, err := h.listHandler.Handle(query.ListProductsQuery{
		Filter: filterSpecFromQuery(r),
		Limit:  limit,
		Skip:   skip,
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]productView, 0, len(result.Products))
	for _, p := range result.Products {
		views = append(views, toProductView(p))
	}

	h.totalProducts.Set(float64(result.Total))
	h.respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": views,
			"total":    result.Total,
			"limit":    limit,
			"skip":     skip,
		},
	})
}

// SearchProducts handles GET /productos/buscar?q=
func (h *CatalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	spec := domain.DefaultFilterSpec()
	spec.Search = r.URL.Query().Get("q")

	result, err := h.listHandler.Handle(query.ListProductsQuery{Filter: spec})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]productView, 0, len(result.Products))
	for _, p := range result.Products {
		views = append(views, toProductView(p))
	}

	h.respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": views,
			"total":    result.Total,
		},
	})
}

// GetProduct handles GET /productos/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.getHandler.Handle(query.GetProductQuery{ID: id})
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	h.respondJSON(w, http.StatusOK, Response{Success: true, Data: toProductView(*product)})
}

// ListCategories handles GET /productos/categorias
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoriesHandler.Handle()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, Response{Success: true, Data: categories})
}

// CreateProduct handles POST /productos
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
		Category    string  `json:"category"`
		Image       string  `json:"image"`
		RatingRate  float64 `json:"rating_rate"`
		RatingCount int     `json:"rating_count"`
		Featured    bool    `json:"featured"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.createHandler.Handle(command.CreateProductCommand{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Image:       req.Image,
		RatingRate:  req.RatingRate,
		RatingCount: req.RatingCount,
		Featured:    req.Featured,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    toProductView(*product),
	})
}

// UpdateProduct handles PUT /productos/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
		Category    string  `json:"category"`
		Image       string  `json:"image"`
		Featured    bool    `json:"featured"`
		IsActive    *bool   `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product, err := h.updateHandler.Handle(command.UpdateProductCommand{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Image:       req.Image,
		Featured:    req.Featured,
		IsActive:    isActive,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    toProductView(*product),
	})
}

// DeleteProduct handles DELETE /productos/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteProductCommand{ID: id}); err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product deleted successfully"})
}

// UpdateStock handles PATCH /productos/{id}/stock
func (h *CatalogHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		Stock int `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.adjustStockHandler.Handle(command.AdjustStockCommand{ProductID: id, Quantity: req.Stock}); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, Response{Success: true, Message: "Stock updated successfully"})
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("product id must be positive")
	}
	return uint(id), nil
}

func (h *CatalogHandler) respondJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func (h *CatalogHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, Response{Success: false, Error: message})
}
