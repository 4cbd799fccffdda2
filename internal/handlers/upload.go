package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/revxlabs/revx/internal/errors"
	"github.com/revxlabs/revx/internal/services"
)

// UploadHandler signs direct uploads to the external asset host.
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// AuthParams returns a token/signature/expire triple for a browser upload.
// The response shape is dictated by the asset host.
func (h *UploadHandler) AuthParams(c *gin.Context) {
	signature, err := h.uploadService.Sign()
	if err != nil {
		if errors.Is(err, services.ErrUploadKeyNotConfigured) {
			apierrors.InternalError(c, "Asset host private key not configured")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, signature)
}
