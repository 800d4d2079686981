package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/photoshare-dev/photoshare/internal/storage"
)

// saveUpload processes the multipart image in field and stores it under
// prefix. On failure it writes the response and returns false.
func (h *Handler) saveUpload(ctx *gin.Context, field, prefix string, width, height int) (string, bool) {
	header, err := ctx.FormFile(field)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s file is required", field)})
		return "", false
	}

	if header.Size > h.maxUploadBytes() {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("%s must be at most %d MB", field, h.cfg.MaxUploadMB),
		})
		return "", false
	}

	file, err := header.Open()

	if err != nil {
		h.logger.Error("Failed to open upload", "field", field, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return "", false
	}
	defer file.Close()

	location, err := h.uploader.SaveImage(ctx.Request.Context(), prefix, file, width, height)

	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s must be an image", field)})
			return "", false
		}

		h.logger.Error("Failed to store upload", "field", field, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return "", false
	}

	return location, true
}
