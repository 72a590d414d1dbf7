package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/anonto42/review-portal/backend/internal/repositories"
	"github.com/anonto42/review-portal/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

// ResourceHandler manages the shared resource library
type ResourceHandler struct {
	resourceRepository repositories.ResourceRepository
	blobStore          storage.BlobStore
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(resourceRepo repositories.ResourceRepository, blobStore storage.BlobStore) *ResourceHandler {
	return &ResourceHandler{resourceRepository: resourceRepo, blobStore: blobStore}
}

// RegisterResourceRoutes registers resource library routes
func (h *ResourceHandler) RegisterResourceRoutes(g *echo.Group) {
	g.GET("/resources", h.GetResources)
	g.POST("/resources", h.UploadResource)
	g.DELETE("/resources/:id", h.DeleteResource)
}

// GetResources lists the library, optionally filtered by ?category=
func (h *ResourceHandler) GetResources(c echo.Context) error {
	category := models.ResourceCategory(c.QueryParam("category"))
	resources, err := h.resourceRepository.GetResources(c.Request().Context(), category)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, resources)
}

// UploadResource accepts a multipart form with "name", "category" and "file"
func (h *ResourceHandler) UploadResource(c echo.Context) error {
	var req models.CreateResourceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	file, err := uploadFormFile(ctx, c, h.blobStore, "file", "resources", true)
	if err != nil {
		return err
	}

	resource := &models.Resource{
		Name:        strings.TrimSpace(req.Name),
		URL:         file.URL,
		Category:    req.Category,
		ContentType: file.ContentType,
	}
	if err := h.resourceRepository.CreateResource(ctx, resource); err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, resource)
}

func (h *ResourceHandler) DeleteResource(c echo.Context) error {
	id, err := parseUintID(c)
	if err != nil {
		return err
	}
	if err := h.resourceRepository.DeleteResource(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
