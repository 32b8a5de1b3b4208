package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/sahithdaddla/veera20-Job-Applications/internal/services"
	"github.com/sahithdaddla/veera20-Job-Applications/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	apps := r.Group("/applications")
	{
		apps.POST("", h.Submit)
		apps.GET("", h.List)
		apps.PATCH("/:id", h.UpdateStatus)
	}
}

// Submit accepts the multipart intake form: three JSON-encoded text fields
// plus the intake documents.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	req := &services.SubmitRequest{
		PersonalInfo:   c.PostForm("personalInfo"),
		WorkExperience: c.PostForm("workExperience"),
		Documents:      c.PostForm("documents"),
		Files:          map[string][]*multipart.FileHeader{},
	}
	for field, headers := range form.File {
		if len(headers) > 0 {
			req.Files[field] = headers
		}
	}

	app, err := h.applicationService.Submit(c.Request.Context(), h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Application submitted successfully",
		"id":      app.ID,
	})
}

// List searches applications with the query mini-language, an optional
// status filter and pagination.
func (h *ApplicationHandler) List(c *gin.Context) {
	page := ParseQueryInt(c, "page", 1)
	limit := ParseQueryInt(c, "limit", 10)

	result, err := h.applicationService.List(
		c.Request.Context(),
		h.GetDB(c),
		c.Query("search"),
		c.Query("status"),
		page,
		limit,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus performs the review action.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	var req updateStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	app, err := h.applicationService.UpdateStatus(c.Request.Context(), h.GetDB(c), id, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("Application %s successfully", strings.ToLower(req.Status)),
		"application": app,
	})
}
