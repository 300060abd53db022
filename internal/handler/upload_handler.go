package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loomline/admin-api/internal/service"
	"github.com/loomline/admin-api/internal/utils"
)

// Product photos are modest; anything larger is a mistake.
const maxUploadBytes = 10 << 20

// UploadHandler accepts product image uploads.
type UploadHandler struct {
	uploads *service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload stores a multipart image and returns its URL.
// POST /api/admin/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "An image file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		utils.Error(c, http.StatusBadRequest, "File too large (max 10MB)")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.uploads.UploadProductImage(c.Request.Context(), fileHeader.Filename, data, contentType)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
