package server

import (
	"net/http"
	"testing"

	"github.com/example/adminshop/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderComputesTotalFromItems(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/order", map[string]interface{}{
		"fullName": "Ali Valiyev",
		"phone":    "+998901234567",
		"address":  "Toshkent",
		"oferta":   true,
		// Submitted total is ignored when items are present.
		"totalPrice": 1.0,
		"items": []map[string]interface{}{
			{"productId": "p1", "quantity": 2, "price": 1500.0},
			{"productId": "p2", "quantity": 1, "price": 2000.0},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Order
	decodeBody(t, rec, &created)
	assert.Equal(t, 5000.0, created.TotalPrice)
	assert.Equal(t, models.OrderStatusNew, created.Status)
	require.Len(t, created.Items, 2)
	assert.NotEmpty(t, created.Items[0].ID)
}

// Without items the stored total is taken as given and never recomputed.
func TestCreateOrderKeepsBareTotal(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/order", map[string]interface{}{
		"fullName":   "Ali Valiyev",
		"phone":      "+998901234567",
		"totalPrice": 777000.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Order
	decodeBody(t, rec, &created)
	assert.Equal(t, 777000.0, created.TotalPrice)
	assert.Empty(t, created.Items)
}

func TestCreateOrderValidation(t *testing.T) {
	testCases := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "missing full name",
			body: map[string]interface{}{"phone": "+998901234567"},
		},
		{
			name: "missing phone",
			body: map[string]interface{}{"fullName": "Ali Valiyev"},
		},
		{
			name: "unknown status",
			body: map[string]interface{}{"fullName": "Ali Valiyev", "phone": "+998901234567", "status": "Bekor"},
		},
		{
			name: "item with zero quantity",
			body: map[string]interface{}{
				"fullName": "Ali Valiyev",
				"phone":    "+998901234567",
				"items":    []map[string]interface{}{{"productId": "p1", "quantity": 0, "price": 100.0}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newTestServer(t)

			rec := doJSON(t, srv, http.MethodPost, "/order", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

// Changing the status must leave every other order field untouched.
func TestUpdateOrderStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/order", map[string]interface{}{
		"fullName": "Ali Valiyev",
		"phone":    "+998901234567",
		"address":  "Toshkent",
		"items": []map[string]interface{}{
			{"productId": "p1", "quantity": 1, "price": 250000.0},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Order
	decodeBody(t, rec, &created)
	require.Equal(t, models.OrderStatusNew, created.Status)

	rec = doJSON(t, srv, http.MethodPut, "/order/"+created.ID+"/status", map[string]interface{}{
		"status": "Yakunlangan",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Order
	decodeBody(t, rec, &updated)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.FullName, updated.FullName)
	assert.Equal(t, created.Phone, updated.Phone)
	assert.Equal(t, created.TotalPrice, updated.TotalPrice)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	require.Len(t, updated.Items, 1)
	assert.Equal(t, created.Items[0], updated.Items[0])
}

func TestUpdateOrderStatusRejectsUnknown(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/order", map[string]interface{}{
		"fullName": "Ali Valiyev", "phone": "+998901234567", "totalPrice": 100.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Order
	decodeBody(t, rec, &created)

	rec = doJSON(t, srv, http.MethodPut, "/order/"+created.ID+"/status", map[string]interface{}{
		"status": "Bekor qilindi",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The order is untouched.
	rec = doJSON(t, srv, http.MethodGet, "/order", nil)
	var orders []models.Order
	decodeBody(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusNew, orders[0].Status)
}

func TestListOrdersStatusFilter(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, status := range []string{"Yangi", "Jarayonda", "Yakunlangan", "Yangi"} {
		rec := doJSON(t, srv, http.MethodPost, "/order", map[string]interface{}{
			"fullName": "Ali Valiyev", "phone": "+998901234567", "status": status, "totalPrice": 100.0,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var orders []models.Order

	rec := doJSON(t, srv, http.MethodGet, "/order", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &orders)
	assert.Len(t, orders, 4)

	rec = doJSON(t, srv, http.MethodGet, "/order?status=Yangi", nil)
	decodeBody(t, rec, &orders)
	assert.Len(t, orders, 2)

	rec = doJSON(t, srv, http.MethodGet, "/order?status=Tugagan", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteOrder(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/order", map[string]interface{}{
		"fullName": "Ali Valiyev", "phone": "+998901234567", "totalPrice": 100.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Order
	decodeBody(t, rec, &created)

	rec = doJSON(t, srv, http.MethodDelete, "/order/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/order/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
