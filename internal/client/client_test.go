package client_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"bolucompras/internal/client"
	"bolucompras/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDoer returns a canned response and records the request it saw.
type stubDoer struct {
	status int
	body   string
	seen   *http.Request
}

func (d *stubDoer) Do(req *http.Request) (*http.Response, error) {
	d.seen = req
	return &http.Response{
		StatusCode: d.status,
		Body:       io.NopCloser(strings.NewReader(d.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func TestCreateDecodesConflict(t *testing.T) {
	doer := &stubDoer{
		status: http.StatusBadRequest,
		body:   `{"message":"Producto ya existe","exists":true,"product":{"id":"abc","name":"Leche","quantity":2}}`,
	}
	api := client.New("http://bolucompras.test", doer)

	_, err := api.Create(client.CreateRequest{Name: "Leche"}, false)

	require.Error(t, err)
	var conflict *client.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "abc", conflict.Existing.ID)
	assert.Equal(t, 2, conflict.Existing.Quantity)
}

func TestCreateForceAddsQueryParam(t *testing.T) {
	doer := &stubDoer{status: http.StatusCreated, body: `{"id":"abc","name":"Leche"}`}
	api := client.New("http://bolucompras.test", doer)

	created, err := api.Create(client.CreateRequest{Name: "Leche"}, true)

	require.NoError(t, err)
	assert.Equal(t, "abc", created.ID)
	assert.Equal(t, "force=true", doer.seen.URL.RawQuery)
}

func TestUpdateMapsNotFound(t *testing.T) {
	doer := &stubDoer{status: http.StatusNotFound, body: `{"message":"Producto no encontrado"}`}
	api := client.New("http://bolucompras.test", doer)

	quantity := 1
	_, err := api.Update("missing-id", models.ProductPatch{Quantity: &quantity})

	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestDeleteMapsNotFound(t *testing.T) {
	doer := &stubDoer{status: http.StatusNotFound, body: `{"message":"Producto no encontrado"}`}
	api := client.New("http://bolucompras.test", doer)

	err := api.Delete("missing-id")

	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestGenericErrorCarriesStatusAndMessage(t *testing.T) {
	doer := &stubDoer{status: http.StatusInternalServerError, body: `{"message":"database unavailable"}`}
	api := client.New("http://bolucompras.test", doer)

	_, err := api.List(1, 10)

	require.Error(t, err)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "database unavailable", apiErr.Message)
}

func TestListBuildsPageQuery(t *testing.T) {
	doer := &stubDoer{status: http.StatusOK, body: `{"data":[],"page":3,"totalPages":3,"total":25}`}
	api := client.New("http://bolucompras.test", doer)

	page, err := api.List(3, 10)

	require.NoError(t, err)
	assert.Equal(t, "page=3&limit=10", doer.seen.URL.RawQuery)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, int64(25), page.Total)
}

func TestKnownCategories(t *testing.T) {
	assert.True(t, client.IsKnownCategory("General"))
	assert.True(t, client.IsKnownCategory("Lácteos"))
	assert.False(t, client.IsKnownCategory("Electrónica"))
	assert.Len(t, client.Categories, 14)
}
