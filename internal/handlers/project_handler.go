package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/anonto42/review-portal/backend/internal/services"
	"github.com/anonto42/review-portal/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

// ProjectHandler handles HTTP requests related to projects
type ProjectHandler struct {
	projectService *services.ProjectService
	commentService *services.CommentService
	blobStore      storage.BlobStore
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *services.ProjectService, commentService *services.CommentService, blobStore storage.BlobStore) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		commentService: commentService,
		blobStore:      blobStore,
	}
}

// RegisterProjectRoutes registers the client-facing routes on public and the
// management routes on admin.
func (h *ProjectHandler) RegisterProjectRoutes(public, admin *echo.Group) {
	public.GET("/projects", h.GetProjects)
	public.GET("/projects/:id", h.GetProject)
	public.PUT("/projects/:id/decision", h.UpdateDecision)
	public.PUT("/projects/:id/reaction", h.AddReaction)
	public.PUT("/projects/:id/final", h.SelectFinal)
	public.GET("/projects/:id/comments", h.GetComments)

	admin.POST("/projects", h.CreateProject)
	admin.DELETE("/projects/:id", h.DeleteProject)
	admin.POST("/projects/:id/versions", h.UploadVersion)
}

func (h *ProjectHandler) GetProjects(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, projects)
}

// GetProject returns the project with its versions grouped by file name
func (h *ProjectHandler) GetProject(c echo.Context) error {
	detail, err := h.projectService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, detail)
}

// CreateProject accepts a multipart form with an optional "logo" file
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req models.CreateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	logo, err := uploadFormFile(ctx, c, h.blobStore, "logo", "logos", false)
	if err != nil {
		return err
	}
	logoURL := ""
	if logo != nil {
		logoURL = logo.URL
	}

	project, err := h.projectService.Create(ctx, req, logoURL)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, project)
}

func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	if err := h.projectService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadVersion stores the multipart "file" and appends it to the version
// log. An optional "name" field overrides the display name.
func (h *ProjectHandler) UploadVersion(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	// Resolve first so a missing project never leaves a stray upload behind.
	if _, err := h.projectService.Get(ctx, id); err != nil {
		return err
	}

	file, err := uploadFormFile(ctx, c, h.blobStore, "file", "versions/"+id, true)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		name = file.Name
	}

	project, err := h.projectService.AppendVersion(ctx, id, models.Artifact{
		URL:         file.URL,
		Name:        name,
		ContentType: file.ContentType,
	})
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, models.NewProjectDetail(project))
}

func (h *ProjectHandler) UpdateDecision(c echo.Context) error {
	var req models.UpdateDecisionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.SetDecision(c.Request().Context(), c.Param("id"), req.Decision)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, project)
}

func (h *ProjectHandler) AddReaction(c echo.Context) error {
	var req models.CreateReactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.AddReaction(c.Request().Context(), c.Param("id"), req.Kind)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, project)
}

func (h *ProjectHandler) SelectFinal(c echo.Context) error {
	var req models.SelectFinalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.SelectFinalVersion(c.Request().Context(), c.Param("id"), req.URL)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, project)
}

// GetComments lists the project's thread, oldest first
func (h *ProjectHandler) GetComments(c echo.Context) error {
	return JSON(c, http.StatusOK, h.commentService.List(c.Request().Context(), c.Param("id")))
}
