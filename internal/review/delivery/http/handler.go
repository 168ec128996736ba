package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	checkoutdomain "github.com/studimarket/storefront/internal/checkout/domain"
	"github.com/studimarket/storefront/internal/review/domain"
	"github.com/studimarket/storefront/internal/review/usecase/command"
	"github.com/studimarket/storefront/internal/review/usecase/query"
)

// ReviewHandler handles HTTP requests for product reviews
type ReviewHandler struct {
	addHandler  *command.AddReviewHandler
	listHandler *query.ListReviewsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews domain.ReviewRepository, products catalogdomain.ProductRepository) *ReviewHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_requests_total",
			Help: "Total number of requests to the review endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "review_request_duration_seconds",
			Help:    "Duration of review requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &ReviewHandler{
		addHandler:     command.NewAddReviewHandler(reviews, products),
		listHandler:    query.NewListReviewsHandler(reviews, products),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
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
func (h *ReviewHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *ReviewHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/productos/{id}/comentarios", h.metricsMiddleware("/productos/{id}/comentarios", h.ListReviews)).Methods("GET")
	router.HandleFunc("/productos/{id}/comentarios", h.metricsMiddleware("/productos/{id}/comentarios", h.AddReview)).Methods("POST")
}

// ListReviews handles GET /productos/{id}/comentarios
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	reviews, err := h.listHandler.Handle(r.Context(), query.ListReviewsQuery{ProductID: id})
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	h.respondJSON(w, http.StatusOK, Response{Success: true, Data: reviews})
}

// AddReview handles POST /productos/{id}/comentarios
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		Author string `json:"author"`
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.addHandler.Handle(r.Context(), command.AddReviewCommand{
		ProductID: id,
		Author:    req.Author,
		Rating:    req.Rating,
		Text:      req.Text,
	})
	if err != nil {
		var fieldErrs checkoutdomain.ValidationErrors
		if errors.As(err, &fieldErrs) {
			h.respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Validation failed",
				Fields:  fieldErrs,
			})
			return
		}
		h.respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	h.respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Review added",
		Data:    review,
	})
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *ReviewHandler) respondJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func (h *ReviewHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, Response{Success: false, Error: message})
}
