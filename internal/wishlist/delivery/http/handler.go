package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	cartdomain "github.com/studimarket/storefront/internal/cart/domain"
	cartcommand "github.com/studimarket/storefront/internal/cart/usecase/command"
	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	"github.com/studimarket/storefront/internal/middleware"
	"github.com/studimarket/storefront/internal/wishlist/domain"
	"github.com/studimarket/storefront/internal/wishlist/usecase/command"
	"github.com/studimarket/storefront/internal/wishlist/usecase/query"
)

// WishlistHandler handles HTTP requests for the wishlist
type WishlistHandler struct {
	// Command handlers
	toggleHandler *command.ToggleItemHandler
	removeHandler *command.RemoveItemHandler
	clearHandler  *command.ClearWishlistHandler
	buyAllHandler *command.BuyAllHandler

	// Query handlers
	getHandler *query.GetWishlistHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(
	wishlists domain.WishlistRepository,
	carts cartdomain.CartRepository,
	products catalogdomain.ProductRepository,
) *WishlistHandler {
	return NewWishlistHandlerWithDI(
		command.NewToggleItemHandler(wishlists),
		command.NewRemoveItemHandler(wishlists),
		command.NewClearWishlistHandler(wishlists),
		command.NewBuyAllHandler(wishlists, products, cartcommand.NewAddItemHandler(carts)),
		query.NewGetWishlistHandler(wishlists, products),
	)
}

// NewWishlistHandlerWithDI creates a new wishlist handler from pre-built
// command and query handlers. Used by Wire.
func NewWishlistHandlerWithDI(
	toggleHandler *command.ToggleItemHandler,
	removeHandler *command.RemoveItemHandler,
	clearHandler *command.ClearWishlistHandler,
	buyAllHandler *command.BuyAllHandler,
	getHandler *query.GetWishlistHandler,
) *WishlistHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wishlist_requests_total",
			Help: "Total number of requests to the wishlist endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wishlist_request_duration_seconds",
			Help:    "Duration of wishlist requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &WishlistHandler{
		toggleHandler:  toggleHandler,
		removeHandler:  removeHandler,
		clearHandler:   clearHandler,
		buyAllHandler:  buyAllHandler,
		getHandler:     getHandler,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
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
func (h *WishlistHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *WishlistHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/wishlist", h.metricsMiddleware("/wishlist", middleware.SessionMiddleware(h.GetWishlist))).Methods("GET")
	router.HandleFunc("/wishlist", h.metricsMiddleware("/wishlist", middleware.SessionMiddleware(h.ClearWishlist))).Methods("DELETE")
	router.HandleFunc("/wishlist/comprar", h.metricsMiddleware("/wishlist/comprar", middleware.SessionMiddleware(h.BuyAll))).Methods("POST")
	router.HandleFunc("/wishlist/{id}", h.metricsMiddleware("/wishlist/{id}", middleware.SessionMiddleware(h.ToggleItem))).Methods("PUT")
	router.HandleFunc("/wishlist/{id}", h.metricsMiddleware("/wishlist/{id}", middleware.SessionMiddleware(h.RemoveItem))).Methods("DELETE")
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	view, err := h.getHandler.Handle(r.Context(), query.GetWishlistQuery{Session: session})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, Response{Success: true, Data: view})
}

// ToggleItem handles PUT /wishlist/{id}
func (h *WishlistHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	added, err := h.toggleHandler.Handle(r.Context(), command.ToggleItemCommand{Session: session, ProductID: id})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	message := "Product removed from wishlist"
	if added {
		message = "Product added to wishlist"
	}
	h.respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    map[string]bool{"in_wishlist": added},
	})
}

// RemoveItem handles DELETE /wishlist/{id}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.removeHandler.Handle(r.Context(), command.RemoveItemCommand{Session: session, ProductID: id}); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product removed from wishlist"})
}

// ClearWishlist handles DELETE /wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	if err := h.clearHandler.Handle(r.Context(), command.ClearWishlistCommand{Session: session}); err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, Response{Success: true, Message: "Wishlist cleared"})
}

// BuyAll handles POST /wishlist/comprar
func (h *WishlistHandler) BuyAll(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	result, err := h.buyAllHandler.Handle(r.Context(), command.BuyAllCommand{Session: session})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, Response{
		Success: result.Success,
		Message: result.Message,
		Data:    result,
	})
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *WishlistHandler) respondJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func (h *WishlistHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, Response{Success: false, Error: message})
}
