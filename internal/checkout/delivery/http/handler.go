package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/studimarket/storefront/internal/checkout/domain"
	"github.com/studimarket/storefront/internal/checkout/usecase/command"
	"github.com/studimarket/storefront/internal/checkout/usecase/query"
	"github.com/studimarket/storefront/internal/middleware"
)

// CheckoutHandler handles HTTP requests for checkout and order lookups
type CheckoutHandler struct {
	placeHandler *command.PlaceOrderHandler
	getHandler   *query.GetOrderHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	ordersPlaced   prometheus.Counter
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(placeHandler *command.PlaceOrderHandler, getHandler *query.GetOrderHandler) *CheckoutHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_requests_total",
			Help: "Total number of requests to the checkout endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "checkout_request_duration_seconds",
			Help:    "Duration of checkout requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ordersPlaced := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_orders_placed_total",
			Help: "Total number of completed orders",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(ordersPlaced)

	return &CheckoutHandler{
		placeHandler:   placeHandler,
		getHandler:     getHandler,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		ordersPlaced:   ordersPlaced,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
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
func (h *CheckoutHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *CheckoutHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/checkout", h.metricsMiddleware("/checkout", middleware.SessionMiddleware(h.PlaceOrder))).Methods("POST")
	router.HandleFunc("/ordenes/{orderID}", h.metricsMiddleware("/ordenes/{orderID}", h.GetOrder)).Methods("GET")
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	var req struct {
		Name          string `json:"name"`
		Email         string `json:"email"`
		Address       string `json:"address"`
		City          string `json:"city"`
		PostalCode    string `json:"postal_code"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, _ := r.Context().Value(middleware.UserIDKey).(uint)

	order, err := h.placeHandler.Handle(r.Context(), command.PlaceOrderCommand{
		Session:       session,
		UserID:        userID,
		Name:          req.Name,
		Email:         req.Email,
		Address:       req.Address,
		City:          req.City,
		PostalCode:    req.PostalCode,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		var fieldErrs domain.ValidationErrors
		if errors.As(err, &fieldErrs) {
			h.respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Validation failed",
				Fields:  fieldErrs,
			})
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.ordersPlaced.Inc()
	h.respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order placed successfully",
		Data:    order,
	})
}

// GetOrder handles GET /ordenes/{orderID}
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderID"]

	order, err := h.getHandler.Handle(query.GetOrderQuery{OrderID: orderID})
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Order not found")
		return
	}

	h.respondJSON(w, http.StatusOK, Response{Success: true, Data: order})
}

func (h *CheckoutHandler) respondJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func (h *CheckoutHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, Response{Success: false, Error: message})
}
