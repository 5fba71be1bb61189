package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// uploadFile accepts a multipart image under the "file" field, stores it in
// the upload dir under a random name and answers with the public URL in the
// "compressed" field the dashboard expects.
func (s *Server) uploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	if s.config.Upload.MaxBytes > 0 && file.Size > s.config.Upload.MaxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only image uploads are allowed"})
		return
	}

	if err := os.MkdirAll(s.config.Upload.Dir, 0o755); err != nil {
		s.logger.Error("Failed to create upload dir", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst := filepath.Join(s.config.Upload.Dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		s.logger.Error("Failed to save uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	url := strings.TrimSuffix(s.config.Upload.BaseURL, "/") + "/" + name
	s.audit.Record("upload_file", name, map[string]interface{}{"size": file.Size})

	c.JSON(http.StatusOK, gin.H{"compressed": url})
}
