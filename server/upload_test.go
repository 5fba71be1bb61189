package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doUpload(t *testing.T, srv *Server, field, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestUploadImage(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doUpload(t, srv, "file", "rasm.png", "image/png", []byte("fake png bytes"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	url := resp["compressed"]
	require.True(t, strings.HasPrefix(url, srv.config.Upload.BaseURL+"/"), "unexpected url %q", url)
	assert.True(t, strings.HasSuffix(url, ".png"))

	// The file landed in the upload dir under the name in the URL.
	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(srv.config.Upload.Dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), data)
}

func TestUploadRejections(t *testing.T) {
	srv, _ := newTestServer(t)

	// Wrong field name.
	rec := doUpload(t, srv, "image", "rasm.png", "image/png", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Not an image.
	rec = doUpload(t, srv, "file", "virus.exe", "application/octet-stream", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Over the size limit.
	big := bytes.Repeat([]byte("a"), int(srv.config.Upload.MaxBytes)+1)
	rec = doUpload(t, srv, "file", "katta.png", "image/png", big)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
