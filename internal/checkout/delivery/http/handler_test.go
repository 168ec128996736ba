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

	cartdomain "github.com/studimarket/storefront/internal/cart/domain"
	cartrepo "github.com/studimarket/storefront/internal/cart/repository"
	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	catalogrepo "github.com/studimarket/storefront/internal/catalog/repository"
	checkoutrepo "github.com/studimarket/storefront/internal/checkout/repository"
	"github.com/studimarket/storefront/internal/checkout/usecase/command"
	"github.com/studimarket/storefront/internal/checkout/usecase/query"
	"github.com/studimarket/storefront/internal/middleware"
)

// Prometheus collectors register globally, so the handler is built once
// for the whole test package.
var (
	testHandler *CheckoutHandler
	testCarts   *cartrepo.InMemoryCartRepository
)

func init() {
	catalog := catalogrepo.NewInMemoryProductRepository()
	product := catalogdomain.Product{Title: "Cuaderno profesional", Price: 45.50, Stock: 10, IsActive: true}
	if err := catalog.Create(&product); err != nil {
		panic(err)
	}

	testCarts = cartrepo.NewInMemoryCartRepository()
	orders := checkoutrepo.NewInMemoryOrderRepository()
	testHandler = NewCheckoutHandler(
		command.NewPlaceOrderHandler(orders, testCarts, catalog, nil, 0),
		query.NewGetOrderHandler(orders),
	)
}

func testRouter() *mux.Router {
	router := mux.NewRouter()
	testHandler.RegisterRoutes(router)
	return router
}

func checkoutBody() map[string]string {
	return map[string]string{
		"name":           "Ana Torres",
		"email":          "ana@example.com",
		"address":        "Av. Universidad 123",
		"city":           "Monterrey",
		"postal_code":    "64000",
		"payment_method": "card",
	}
}

func postCheckout(t *testing.T, router *mux.Router, session string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, "/checkout", &buf)
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCheckoutHappyPath(t *testing.T) {
	router := testRouter()
	session := "co-happy"
	require.NoError(t, testCarts.Save(httptest.NewRequest(http.MethodGet, "/", nil).Context(), session,
		[]cartdomain.LineItem{{ProductID: 1, Quantity: 2}}))

	rec := postCheckout(t, router, session, checkoutBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	orderID, _ := data["order_id"].(string)
	require.NotEmpty(t, orderID)
	assert.Equal(t, "completed", data["status"])
	assert.Equal(t, 91.0, data["amount"])

	req := httptest.NewRequest(http.MethodGet, "/ordenes/"+orderID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)
	require.Equal(t, http.StatusOK, getRec.Code)
}

func TestCheckoutValidationErrors(t *testing.T) {
	router := testRouter()
	session := "co-invalid"
	require.NoError(t, testCarts.Save(httptest.NewRequest(http.MethodGet, "/", nil).Context(), session,
		[]cartdomain.LineItem{{ProductID: 1, Quantity: 1}}))

	body := checkoutBody()
	body["email"] = "nope"
	delete(body, "name")

	rec := postCheckout(t, router, session, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)

	fields := resp.Fields.(map[string]interface{})
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "name")
}

func TestCheckoutEmptyCart(t *testing.T) {
	rec := postCheckout(t, testRouter(), "co-empty", checkoutBody())
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	fields := resp.Fields.(map[string]interface{})
	assert.Contains(t, fields, "cart")
}

func TestGetUnknownOrder(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ordenes/ORD-DOESNOTEXIST", nil)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
