// Package upstream fetches product data from the external catalog API and
// normalizes it into the canonical product shape. The upstream exposes two
// dialects: the StudiMarket backend with localized field names (titulo,
// precio, categoria) and the FakeStore-style API with English names. Both
// collapse here; mixed string/number ids are coerced to uint once.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/studimarket/storefront/internal/catalog/domain"
	"github.com/studimarket/storefront/pkg/logger"
)

// Client is an HTTP client for the upstream product API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// flexID accepts JSON numbers and numeric strings
type flexID uint

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("unparseable product id %q: %w", s, err)
	}
	*f = flexID(n)
	return nil
}

// flexFloat accepts JSON numbers and numeric strings
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("unparseable number %q: %w", s, err)
	}
	*f = flexFloat(n)
	return nil
}

// rawProduct carries both upstream dialects side by side
type rawProduct struct {
	ID         flexID `json:"id"`
	IDProducto flexID `json:"id_producto"`

	Title  string `json:"title"`
	Titulo string `json:"titulo"`

	Description string `json:"description"`
	Descripcion string `json:"descripcion"`

	Price  flexFloat `json:"price"`
	Precio flexFloat `json:"precio"`

	Category  string `json:"category"`
	Categoria string `json:"categoria"`

	Image  string `json:"image"`
	Imagen string `json:"imagen"`

	Stock    flexFloat `json:"stock"`
	Featured bool      `json:"featured"`

	Rating      *struct {
		Rate  flexFloat `json:"rate"`
		Count flexFloat `json:"count"`
	} `json:"rating"`
	RatingRate  flexFloat `json:"rating_rate"`
	RatingCount flexFloat `json:"rating_count"`
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// Normalize maps a raw upstream product onto the canonical type.
// Missing or negative stock degrades to 0.
func (r rawProduct) Normalize() domain.Product {
	p := domain.Product{
		ID:          uint(max64(uint64(r.ID), uint64(r.IDProducto))),
		Title:       pick(r.Title, r.Titulo),
		Description: pick(r.Description, r.Descripcion),
		Category:    pick(r.Category, r.Categoria),
		Image:       pick(r.Image, r.Imagen),
		IsActive:    true,
		Featured:    r.Featured,
	}

	if r.Price != 0 {
		p.Price = float64(r.Price)
	} else {
		p.Price = float64(r.Precio)
	}
	if p.Price < 0 {
		p.Price = 0
	}

	p.Stock = int(r.Stock)
	if p.Stock < 0 {
		p.Stock = 0
	}

	if r.Rating != nil {
		p.RatingRate = float64(r.Rating.Rate)
		p.RatingCount = int(r.Rating.Count)
	} else {
		p.RatingRate = float64(r.RatingRate)
		p.RatingCount = int(r.RatingCount)
	}

	return p
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// listEnvelope is the StudiMarket backend response shape; the FakeStore
// dialect returns a bare array instead.
type listEnvelope struct {
	Products []rawProduct `json:"products"`
}

// FetchProducts retrieves and normalizes the full upstream catalog.
// Products without a usable id are dropped and logged, never fatal.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	body, err := c.get(ctx, "/productos")
	if err != nil {
		return nil, err
	}

	var raws []rawProduct
	if err := json.Unmarshal(body, &raws); err != nil {
		var envelope listEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("unexpected upstream payload: %w", err)
		}
		raws = envelope.Products
	}

	products := make([]domain.Product, 0, len(raws))
	for _, raw := range raws {
		p := raw.Normalize()
		if p.ID == 0 {
			logger.Warn(ctx).Str("title", p.Title).Msg("Skipping upstream product without id")
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// FetchCategories retrieves the upstream category list
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/productos/categorias")
	if err != nil {
		return nil, err
	}

	var categories []string
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("unexpected upstream payload: %w", err)
	}
	return categories, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d for %s", resp.StatusCode, path)
	}

	return io.ReadAll(resp.Body)
}
