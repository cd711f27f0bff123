// Package client is the typed API client for the product endpoints. It is
// what the page controller talks to; the request transport is injectable so
// tests can drive the Fiber app in-process without a network listener.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"bolucompras/internal/models"
)

// ErrNotFound is returned when the server reports an unknown product id.
var ErrNotFound = errors.New("product not found")

// Doer executes a single HTTP request. *http.Client satisfies it; tests use
// an adapter around fiber's app.Test.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-conflict error response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// ConflictError is returned when a create collides with an existing product.
// Existing is the record the server found, ready to be staged for resolution.
type ConflictError struct {
	Message  string
	Existing models.Product
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("duplicate product: %s", e.Message)
}

// CreateRequest is the POST /api/products payload. Optional fields are
// pointers so the server can tell "absent" from "zero" and apply defaults.
type CreateRequest struct {
	Name                   string   `json:"name"`
	Quantity               *int     `json:"quantity,omitempty"`
	Purchased              *bool    `json:"purchased,omitempty"`
	Categoria              *string  `json:"categoria,omitempty"`
	Prioridad              *int     `json:"prioridad,omitempty"`
	Precio                 *float64 `json:"precio,omitempty"`
	CantidadPredeterminada *int     `json:"cantidad_predeterminada,omitempty"`
}

// ProductAPI is the client for the product endpoints.
type ProductAPI struct {
	baseURL string
	doer    Doer
}

// New creates a ProductAPI. A nil doer falls back to http.DefaultClient.
func New(baseURL string, doer Doer) *ProductAPI {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &ProductAPI{
		baseURL: baseURL,
		doer:    doer,
	}
}

// List fetches one page of products.
func (a *ProductAPI) List(page, limit int) (*models.ProductPage, error) {
	endpoint := fmt.Sprintf("%s/api/products?page=%d&limit=%d", a.baseURL, page, limit)
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var productPage models.ProductPage
	if err := a.do(req, http.StatusOK, &productPage); err != nil {
		return nil, err
	}
	return &productPage, nil
}

// Create creates a product. A duplicate name yields a *ConflictError carrying
// the existing record; force bypasses the duplicate gate for this attempt.
func (a *ProductAPI) Create(request CreateRequest, force bool) (*models.Product, error) {
	endpoint := a.baseURL + "/api/products"
	if force {
		endpoint += "?force=true"
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal create request: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var created models.Product
	if err := a.do(req, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies a partial update and returns the updated document.
func (a *ProductAPI) Update(id string, patch models.ProductPatch) (*models.Product, error) {
	body, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patch: %w", err)
	}
	req, err := http.NewRequest(http.MethodPatch, a.baseURL+"/api/products/"+url.PathEscape(id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var updated models.Product
	if err := a.do(req, http.StatusOK, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a product by id.
func (a *ProductAPI) Delete(id string) error {
	req, err := http.NewRequest(http.MethodDelete, a.baseURL+"/api/products/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return a.do(req, http.StatusOK, nil)
}

// errorResponse is the shape the server uses for all error bodies.
type errorResponse struct {
	Message string          `json:"message"`
	Exists  bool            `json:"exists"`
	Product *models.Product `json:"product"`
}

// do executes the request and decodes either the expected success body into
// out or an error body into the matching error type.
func (a *ProductAPI) do(req *http.Request, wantStatus int, out interface{}) error {
	resp, err := a.doer.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var errResp errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr != nil {
			return &APIError{Status: resp.StatusCode, Message: "unreadable error response"}
		}
		if errResp.Exists && errResp.Product != nil {
			return &ConflictError{Message: errResp.Message, Existing: *errResp.Product}
		}
		if resp.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		return &APIError{Status: resp.StatusCode, Message: errResp.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
