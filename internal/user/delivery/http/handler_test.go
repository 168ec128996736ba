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

	"github.com/studimarket/storefront/internal/user/repository"
)

// Prometheus collectors register globally, so the handler is built once
// for the whole test package.
var testHandler *UserHandler

func init() {
	testHandler = NewUserHandler(repository.NewInMemoryUserRepository())
}

func testRouter() *mux.Router {
	router := mux.NewRouter()
	testHandler.RegisterRoutes(router)
	return router
}

func postJSON(t *testing.T, router *mux.Router, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRegisterLoginMe(t *testing.T) {
	router := testRouter()

	rec := postJSON(t, router, "/auth/register", map[string]string{
		"email":     "ana@example.com",
		"password":  "secret1",
		"full_name": "Ana Torres",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	user := decodeResponse(t, rec).Data.(map[string]interface{})
	assert.Equal(t, "Ana", user["first_name"])
	assert.Equal(t, "Torres", user["last_name"])
	assert.NotContains(t, user, "password")

	rec = postJSON(t, router, "/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	login := decodeResponse(t, rec).Data.(map[string]interface{})
	token, _ := login["token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	meRec := httptest.NewRecorder()
	router.ServeHTTP(meRec, req)
	require.Equal(t, http.StatusOK, meRec.Code)

	me := decodeResponse(t, meRec).Data.(map[string]interface{})
	assert.Equal(t, "ana@example.com", me["email"])
}

func TestRegisterDuplicate(t *testing.T) {
	router := testRouter()

	body := map[string]string{
		"email":     "dup@example.com",
		"password":  "secret1",
		"full_name": "Dup User",
	}
	rec := postJSON(t, router, "/auth/register", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, router, "/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	rec := postJSON(t, testRouter(), "/auth/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeRequiresToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeRejectsGarbageToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
