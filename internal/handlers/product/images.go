package product

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/services"
	"shop_backoffice/internal/utils"
)

const maxImageSize = 5 << 20

// UploadImage stores the multipart "file" in MinIO and returns its URL for
// the product form's image list.
func (h *Handler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		handlers.BadRequest(c, "missing file")
		return
	}
	if header.Size > maxImageSize {
		handlers.BadRequest(c, "image is larger than 5 MB")
		return
	}

	ctx := c.Request.Context()
	object, imageURL, err := h.Images.Upload(ctx, header)
	switch {
	case errors.Is(err, services.ErrImagesDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image upload is not configured"})
		return
	case errors.Is(err, services.ErrUnsupportedImage):
		handlers.BadRequest(c, err.Error())
		return
	case err != nil:
		handlers.RespondError(c, err, "upload image")
		return
	}
	c.Set(utils.CtxAuditResourceID, object)

	resp := gin.H{"imageUrl": imageURL, "object": object}
	if signed, err := h.Images.SignedURL(ctx, object, 24*time.Hour); err == nil {
		resp["signedUrl"] = signed
	}
	c.JSON(http.StatusCreated, resp)
}
