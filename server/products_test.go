package server

import (
	"net/http"
	"testing"

	"github.com/example/adminshop/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductValidation(t *testing.T) {
	testCases := []struct {
		name         string
		body         map[string]interface{}
		expectedCode int
	}{
		{
			name:         "valid",
			body:         map[string]interface{}{"name_uz": "Telefon", "price": 2500000.0},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "zero price is allowed",
			body:         map[string]interface{}{"name_uz": "Broshyura", "price": 0.0},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "missing name",
			body:         map[string]interface{}{"price": 2500000.0},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing price",
			body:         map[string]interface{}{"name_uz": "Telefon"},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "negative price",
			body:         map[string]interface{}{"name_uz": "Telefon", "price": -1.0},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newTestServer(t)

			rec := doJSON(t, srv, http.MethodPost, "/products", tc.body)
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

// The stored price is the submitted number as given, no rounding.
func TestCreateProductPriceVerbatim(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/products", map[string]interface{}{
		"name_uz": "Televizor", "price": 4599999.99,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	decodeBody(t, rec, &created)
	assert.Equal(t, 4599999.99, created.Price)

	rec = doJSON(t, srv, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed productListResponse
	decodeBody(t, rec, &listed)
	require.Equal(t, int64(1), listed.Total)
	assert.Equal(t, 4599999.99, listed.Items[0].Price)
}

func TestListProductsFilterAndSort(t *testing.T) {
	srv, _ := newTestServer(t)

	seed := []map[string]interface{}{
		{"name_uz": "Telefon", "name_en": "Phone", "price": 2500000.0, "categoryId": "1"},
		{"name_uz": "Televizor", "name_en": "TV", "price": 4500000.0, "categoryId": "1"},
		{"name_uz": "Futbolka", "name_en": "T-shirt", "price": 120000.0, "categoryId": "2"},
	}
	for _, body := range seed {
		rec := doJSON(t, srv, http.MethodPost, "/products", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var listed productListResponse

	// Search matches any language field, case-insensitive.
	rec := doJSON(t, srv, http.MethodGet, "/products?search=tele", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &listed)
	assert.Equal(t, int64(2), listed.Total)

	rec = doJSON(t, srv, http.MethodGet, "/products?search=t-SHIRT", nil)
	decodeBody(t, rec, &listed)
	require.Equal(t, int64(1), listed.Total)
	assert.Equal(t, "Futbolka", listed.Items[0].NameUz)

	// Category filter.
	rec = doJSON(t, srv, http.MethodGet, "/products?categoryId=2", nil)
	decodeBody(t, rec, &listed)
	require.Equal(t, int64(1), listed.Total)
	assert.Equal(t, "Futbolka", listed.Items[0].NameUz)

	// Price sort is ascending.
	rec = doJSON(t, srv, http.MethodGet, "/products?sort=price", nil)
	decodeBody(t, rec, &listed)
	require.Len(t, listed.Items, 3)
	assert.Equal(t, "Futbolka", listed.Items[0].NameUz)
	assert.Equal(t, "Televizor", listed.Items[2].NameUz)

	// Pagination keeps the unfiltered total.
	rec = doJSON(t, srv, http.MethodGet, "/products?page=1&pageSize=2", nil)
	decodeBody(t, rec, &listed)
	assert.Equal(t, int64(3), listed.Total)
	assert.Len(t, listed.Items, 2)
}

func TestListProductsEmpty(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"total":0}`, rec.Body.String())
}

func TestUpdateProduct(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/products", map[string]interface{}{
		"name_uz": "Telefon", "price": 2500000.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Product
	decodeBody(t, rec, &created)

	rec = doJSON(t, srv, http.MethodPut, "/products/"+created.ID, map[string]interface{}{
		"name_uz": "Smartfon", "price": 2600000.0, "size": "6.1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Product
	decodeBody(t, rec, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Smartfon", updated.NameUz)
	assert.Equal(t, 2600000.0, updated.Price)
	assert.Equal(t, "6.1", updated.Size)

	rec = doJSON(t, srv, http.MethodPut, "/products/missing", map[string]interface{}{
		"name_uz": "X", "price": 1.0,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/products", map[string]interface{}{
		"name_uz": "Telefon", "price": 2500000.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Product
	decodeBody(t, rec, &created)

	rec = doJSON(t, srv, http.MethodDelete, "/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Second delete of the same id is not deduplicated, it just misses.
	rec = doJSON(t, srv, http.MethodDelete, "/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
