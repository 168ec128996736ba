package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchProducts_LocalizedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/productos", r.URL.Path)
		w.Write([]byte(`{
			"products": [
				{
					"id_producto": "7",
					"titulo": "Laptop Dell XPS",
					"descripcion": "Laptop de alta gama",
					"precio": "1299990",
					"categoria": "Electrónica",
					"imagen": "https://example.com/laptop.jpg",
					"stock": 5,
					"rating_rate": 4.5,
					"rating_count": 120
				}
			],
			"total": 1
		}`))
	}))
	defer server.Close()

	products, err := NewClient(server.URL).FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, uint(7), p.ID)
	assert.Equal(t, "Laptop Dell XPS", p.Title)
	assert.Equal(t, "Laptop de alta gama", p.Description)
	assert.Equal(t, float64(1299990), p.Price)
	assert.Equal(t, "Electrónica", p.Category)
	assert.Equal(t, 5, p.Stock)
	assert.Equal(t, 4.5, p.RatingRate)
	assert.Equal(t, 120, p.RatingCount)
	assert.True(t, p.IsActive)
}

func TestFetchProducts_FakeStoreArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{
				"id": 1,
				"title": "Backpack",
				"price": 109.95,
				"description": "Fits laptops up to 15 inches",
				"category": "men's clothing",
				"image": "https://example.com/backpack.jpg",
				"rating": {"rate": 3.9, "count": 120}
			},
			{
				"id": 2,
				"title": "Broken",
				"price": -10,
				"stock": -3
			}
		]`))
	}))
	defer server.Close()

	products, err := NewClient(server.URL).FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, uint(1), products[0].ID)
	assert.Equal(t, "Backpack", products[0].Title)
	assert.Equal(t, 3.9, products[0].RatingRate)
	assert.Equal(t, 120, products[0].RatingCount)

	// Negative price/stock degrade to zero at the boundary
	assert.Equal(t, float64(0), products[1].Price)
	assert.Equal(t, 0, products[1].Stock)
}

func TestFetchProducts_DropsEntriesWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title": "ghost", "price": 10}, {"id": 3, "title": "real", "price": 5}]`))
	}))
	defer server.Close()

	products, err := NewClient(server.URL).FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, uint(3), products[0].ID)
}

func TestFetchProducts_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).FetchProducts(context.Background())
	assert.Error(t, err)
}

func TestFetchCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/productos/categorias", r.URL.Path)
		w.Write([]byte(`["Electrónica", "Ropa"]`))
	}))
	defer server.Close()

	categories, err := NewClient(server.URL).FetchCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Electrónica", "Ropa"}, categories)
}
