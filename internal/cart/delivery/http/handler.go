package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	cartdomain "github.com/studimarket/storefront/internal/cart/domain"
	"github.com/studimarket/storefront/internal/cart/usecase/command"
	"github.com/studimarket/storefront/internal/cart/usecase/query"
	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	"github.com/studimarket/storefront/internal/middleware"
)

// CartHandler handles HTTP requests for the shopping cart
type CartHandler struct {
	// Command handlers
	addHandler         *command.AddItemHandler
	setQuantityHandler *command.SetQuantityHandler
	removeHandler      *command.RemoveItemHandler
	clearHandler       *command.ClearCartHandler

	// Query handlers
	getHandler *query.GetCartHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts cartdomain.CartRepository, products catalogdomain.ProductRepository) *CartHandler {
	return NewCartHandlerWithDI(
		command.NewAddItemHandler(carts),
		command.NewSetQuantityHandler(carts),
		command.NewRemoveItemHandler(carts),
		command.NewClearCartHandler(carts),
		query.NewGetCartHandler(carts, products),
	)
}

// NewCartHandlerWithDI creates a new cart handler from pre-built command
// and query handlers. Used by Wire.
func NewCartHandlerWithDI(
	addHandler *command.AddItemHandler,
	setQuantityHandler *command.SetQuantityHandler,
	removeHandler *command.RemoveItemHandler,
	clearHandler *command.ClearCartHandler,
	getHandler *query.GetCartHandler,
) *CartHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_requests_total",
			Help: "Total number of requests to the cart endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_request_duration_seconds",
			Help:    "Duration of cart requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CartHandler{
		addHandler:         addHandler,
		setQuantityHandler: setQuantityHandler,
		removeHandler:      removeHandler,
		clearHandler:       clearHandler,
		getHandler:         getHandler,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
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
func (h *CartHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/carrito", h.metricsMiddleware("/carrito", middleware.SessionMiddleware(h.GetCart))).Methods("GET")
	router.HandleFunc("/carrito", h.metricsMiddleware("/carrito", middleware.SessionMiddleware(h.AddItem))).Methods("POST")
	router.HandleFunc("/carrito", h.metricsMiddleware("/carrito", middleware.SessionMiddleware(h.ClearCart))).Methods("DELETE")
	router.HandleFunc("/carrito/{id}", h.metricsMiddleware("/carrito/{id}", middleware.SessionMiddleware(h.SetQuantity))).Methods("PUT")
	router.HandleFunc("/carrito/{id}", h.metricsMiddleware("/carrito/{id}", middleware.SessionMiddleware(h.RemoveItem))).Methods("DELETE")
}

// GetCart handles GET /carrito
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	view, err := h.getHandler.Handle(r.Context(), query.GetCartQuery{Session: session})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, Response{Success: true, Data: view})
}

// AddItem handles POST /carrito
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	var req struct {
		ProductID uint `json:"id"`
		Quantity  int  `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items, err := h.addHandler.Handle(r.Context(), command.AddItemCommand{
		Session:   session,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product added to cart",
		Data:    items,
	})
}

// SetQuantity handles PUT /carrito/{id}
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items, err := h.setQuantityHandler.Handle(r.Context(), command.SetQuantityCommand{
		Session:   session,
		ProductID: id,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Cart updated",
		Data:    items,
	})
}

// RemoveItem handles DELETE /carrito/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	items, err := h.removeHandler.Handle(r.Context(), command.RemoveItemCommand{
		Session:   session,
		ProductID: id,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product removed from cart",
		Data:    items,
	})
}

// ClearCart handles DELETE /carrito
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	if err := h.clearHandler.Handle(r.Context(), command.ClearCartCommand{Session: session}); err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, Response{Success: true, Message: "Cart cleared"})
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *CartHandler) respondJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func (h *CartHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, Response{Success: false, Error: message})
}
