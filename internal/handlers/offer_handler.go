package handlers

import (
	"fmt"
	"net/http"

	"github.com/sahithdaddla/veera20-Job-Applications/internal/services"
	"github.com/sahithdaddla/veera20-Job-Applications/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	*BaseHandler
	offerService services.OfferService
}

func NewOfferHandler(base *BaseHandler, offerService services.OfferService) *OfferHandler {
	return &OfferHandler{
		BaseHandler:  base,
		offerService: offerService,
	}
}

func (h *OfferHandler) RegisterRoutes(r *gin.RouterGroup) {
	offers := r.Group("/applications/:id/offer-documents")
	{
		offers.POST("", h.Upload)
		offers.GET("", h.List)
		offers.GET("/:fileId/download", h.Download)
		offers.DELETE("/:fileId", h.Delete)
	}
}

// Upload replaces the application's offer documents with the posted batch.
func (h *OfferHandler) Upload(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	files := form.File["files"]
	docs, err := h.offerService.Replace(c.Request.Context(), h.GetDB(c), id, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Offer documents uploaded successfully",
		"files":   docs,
	})
}

// List returns the application's offer documents, newest first.
func (h *OfferHandler) List(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	docs, err := h.offerService.ListByApplication(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": docs})
}

// Download streams one offer document as a freshly generated PDF.
func (h *OfferHandler) Download(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	fileID := c.Param("fileId")

	filename, pdf, err := h.offerService.Download(c.Request.Context(), h.GetDB(c), id, fileID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Delete removes one offer document.
func (h *OfferHandler) Delete(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	fileID := c.Param("fileId")

	if err := h.offerService.Delete(c.Request.Context(), h.GetDB(c), id, fileID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Offer document deleted successfully"})
}
