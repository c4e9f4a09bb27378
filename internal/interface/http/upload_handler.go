package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fretops/fretops-api/pkg/helpers"
	"github.com/fretops/fretops-api/pkg/response"
)

// UploadHandler stores request attachments either on the local disk or in a
// GCS bucket when one is configured.
type UploadHandler struct {
	GCS       *storage.Client
	Bucket    string
	UploadDir string
	Logger    *logrus.Logger
}

func NewUploadHandler(gcs *storage.Client, bucket, uploadDir string, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{GCS: gcs, Bucket: bucket, UploadDir: uploadDir, Logger: logger}
}

// sanitizeFilename keeps the base name only and replaces spaces so the result
// is safe in a URL path.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.ReplaceAll(name, " ", "_")
}

func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "aucun fichier fourni", nil)
		return
	}

	name := fmt.Sprintf("%d-%s-%s", time.Now().Unix(), uuid.NewString()[:8], sanitizeFilename(file.Filename))

	if h.GCS != nil && h.Bucket != "" {
		src, err := file.Open()
		if err != nil {
			h.Logger.WithError(err).Error("open uploaded file failed")
			response.Error[any](c, http.StatusInternalServerError, "erreur interne du serveur", nil)
			return
		}
		defer src.Close()

		contentType := file.Header.Get("Content-Type")
		url, err := helpers.UploadObject(c.Request.Context(), h.GCS, h.Bucket, "uploads/"+name, contentType, src)
		if err != nil {
			h.Logger.WithError(err).Error("gcs upload failed")
			response.Error[any](c, http.StatusInternalServerError, "échec du téléversement", nil)
			return
		}
		response.Success[any](c, http.StatusCreated, map[string]any{
			"filename": name,
			"url":      url,
		}, "fichier téléversé avec succès", nil)
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		h.Logger.WithError(err).Error("create upload dir failed")
		response.Error[any](c, http.StatusInternalServerError, "erreur interne du serveur", nil)
		return
	}
	dst := filepath.Join(h.UploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		h.Logger.WithError(err).Error("save uploaded file failed")
		response.Error[any](c, http.StatusInternalServerError, "échec du téléversement", nil)
		return
	}
	response.Success[any](c, http.StatusCreated, map[string]any{
		"filename": name,
		"url":      "/uploads/" + name,
	}, "fichier téléversé avec succès", nil)
}
