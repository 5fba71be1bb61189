package server

import (
	"net/http"
	"testing"

	"github.com/example/adminshop/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMessage(t *testing.T) {
	testCases := []struct {
		name         string
		body         map[string]interface{}
		expectedCode int
	}{
		{
			name:         "valid",
			body:         map[string]interface{}{"name": "Ali", "email": "ali@example.com", "message": "Salom"},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "with phone",
			body:         map[string]interface{}{"name": "Ali", "email": "ali@example.com", "phone": "+998901234567", "message": "Salom"},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "invalid email",
			body:         map[string]interface{}{"name": "Ali", "email": "not-an-email", "message": "Salom"},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing message body",
			body:         map[string]interface{}{"name": "Ali", "email": "ali@example.com"},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newTestServer(t)

			rec := doJSON(t, srv, http.MethodPost, "/message", tc.body)
			assert.Equal(t, tc.expectedCode, rec.Code)

			if tc.expectedCode == http.StatusCreated {
				var created models.ContactMessage
				decodeBody(t, rec, &created)
				assert.NotEmpty(t, created.ID)
				assert.False(t, created.IsRead)
			}
		})
	}
}

// Viewing a message flips it to read once; a second view changes nothing.
func TestMarkMessageReadIdempotent(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/message", map[string]interface{}{
		"name": "Ali", "email": "ali@example.com", "message": "Salom",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.ContactMessage
	decodeBody(t, rec, &created)
	require.False(t, created.IsRead)

	rec = doJSON(t, srv, http.MethodPut, "/message/"+created.ID+"/read", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var read models.ContactMessage
	decodeBody(t, rec, &read)
	assert.True(t, read.IsRead)

	rec = doJSON(t, srv, http.MethodPut, "/message/"+created.ID+"/read", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &read)
	assert.True(t, read.IsRead)

	rec = doJSON(t, srv, http.MethodPut, "/message/missing/read", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMessage(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/message", map[string]interface{}{
		"name": "Ali", "email": "ali@example.com", "message": "Salom",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.ContactMessage
	decodeBody(t, rec, &created)

	rec = doJSON(t, srv, http.MethodDelete, "/message/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/message", nil)
	var listed []models.ContactMessage
	decodeBody(t, rec, &listed)
	assert.Empty(t, listed)
}
