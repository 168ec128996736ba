package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	catalogrepo "github.com/studimarket/storefront/internal/catalog/repository"
	reviewrepo "github.com/studimarket/storefront/internal/review/repository"
)

// Prometheus collectors register globally, so the handler is built once
// for the whole test package.
var testHandler *ReviewHandler

func init() {
	products := catalogrepo.NewInMemoryProductRepository()
	product := catalogdomain.Product{Title: "Cuaderno profesional", Price: 45.50, Stock: 10, IsActive: true}
	if err := products.Create(&product); err != nil {
		panic(err)
	}
	testHandler = NewReviewHandler(reviewrepo.NewInMemoryReviewRepository(), products)
}

func testRouter() *mux.Router {
	router := mux.NewRouter()
	testHandler.RegisterRoutes(router)
	return router
}

func postReview(t *testing.T, router *mux.Router, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAddAndListReviews(t *testing.T) {
	router := testRouter()

	rec := postReview(t, router, "/productos/1/comentarios", map[string]interface{}{
		"author": "Luis",
		"rating": 4,
		"text":   "Muy buena calidad",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/productos/1/comentarios", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, req)
	require.Equal(t, http.StatusOK, listRec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &resp))
	reviews := resp.Data.([]interface{})
	require.Len(t, reviews, 1)
	review := reviews[0].(map[string]interface{})
	assert.Equal(t, "Luis", review["author"])
	assert.Equal(t, float64(4), review["rating"])
}

func TestAddReviewDefaultsAuthor(t *testing.T) {
	rec := postReview(t, testRouter(), "/productos/1/comentarios", map[string]interface{}{
		"rating": 5,
		"text":   "Excelente",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	review := resp.Data.(map[string]interface{})
	assert.Equal(t, "Anónimo", review["author"])
}

func TestAddReviewValidation(t *testing.T) {
	rec := postReview(t, testRouter(), "/productos/1/comentarios", map[string]interface{}{
		"rating": 9,
		"text":   "",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	fields := resp.Fields.(map[string]interface{})
	assert.Contains(t, fields, "rating")
	assert.Contains(t, fields, "text")
}

func TestReviewsUnknownProduct(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/productos/999/comentarios", nil)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
