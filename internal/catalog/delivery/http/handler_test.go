package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studimarket/storefront/internal/catalog/domain"
	"github.com/studimarket/storefront/internal/catalog/repository"
)

// The handler registers Prometheus collectors globally, so the test
// package builds it exactly once.
var testHandler *CatalogHandler

func testRouter(t *testing.T) *mux.Router {
	t.Helper()
	if testHandler == nil {
		repo := repository.NewInMemoryProductRepository()
		seed := []domain.Product{
			{ID: 1, Title: "Laptop Dell", Description: "Alta gama", Category: "Electrónicos", Price: 1200, Stock: 4, RatingRate: 4.6, RatingCount: 80, IsActive: true},
			{ID: 2, Title: "Polera", Description: "Algodón", Category: "Ropa", Price: 15, Stock: 9, RatingRate: 3.9, RatingCount: 25, IsActive: true},
		}
		for i := range seed {
			require.NoError(t, repo.Create(&seed[i]))
		}
		testHandler = NewCatalogHandler(repo)
	}

	router := mux.NewRouter()
	testHandler.RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *mux.Router, method, target string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestListProducts(t *testing.T) {
	router := testRouter(t)

	rec, resp := doRequest(t, router, http.MethodGet, "/productos")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
}

func TestListProducts_FilterByCategory(t *testing.T) {
	router := testRouter(t)

	_, resp := doRequest(t, router, http.MethodGet, "/productos?categoria=electr%C3%B3")
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])

	products := data["products"].([]interface{})
	first := products[0].(map[string]interface{})
	assert.Equal(t, "Laptop Dell", first["title"])
	rating := first["rating"].(map[string]interface{})
	assert.Equal(t, 4.6, rating["rate"])
}

func TestListProducts_ConflictingPriceBounds(t *testing.T) {
	router := testRouter(t)

	rec, resp := doRequest(t, router, http.MethodGet, "/productos?min_price=100&max_price=10")
	assert.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(0), data["total"])
}

func TestSearchProducts(t *testing.T) {
	router := testRouter(t)

	_, resp := doRequest(t, router, http.MethodGet, "/productos/buscar?q=algod%C3%B3n")
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}

func TestGetProduct(t *testing.T) {
	router := testRouter(t)

	rec, resp := doRequest(t, router, http.MethodGet, "/productos/1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, _ = doRequest(t, router, http.MethodGet, "/productos/999")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, router, http.MethodGet, "/productos/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCategories(t *testing.T) {
	router := testRouter(t)

	rec, resp := doRequest(t, router, http.MethodGet, "/productos/categorias")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{"Electrónicos", "Ropa"}, resp.Data)
}

func TestCreateProduct_RequiresAuth(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/productos", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
