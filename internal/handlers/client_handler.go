package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/anonto42/review-portal/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const (
	defaultClientSearchLimit = 10
	maxClientSearchLimit     = 50
)

// ClientHandler manages the client directory
type ClientHandler struct {
	clientRepository repositories.ClientRepository
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientRepo repositories.ClientRepository) *ClientHandler {
	return &ClientHandler{clientRepository: clientRepo}
}

// RegisterClientRoutes registers client directory routes
func (h *ClientHandler) RegisterClientRoutes(g *echo.Group) {
	g.GET("/clients", h.GetClients)
	g.POST("/clients", h.CreateClient)
	g.GET("/clients/search", h.SearchClients)
	g.DELETE("/clients/:id", h.DeleteClient)
}

func (h *ClientHandler) GetClients(c echo.Context) error {
	clients, err := h.clientRepository.GetClients(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, clients)
}

func (h *ClientHandler) CreateClient(c echo.Context) error {
	var req models.CreateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	client := &models.Client{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Company: strings.TrimSpace(req.Company),
		Phone:   strings.TrimSpace(req.Phone),
	}
	if err := h.clientRepository.CreateClient(c.Request().Context(), client); err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, client)
}

// SearchClients autocompletes client names: ?q=<prefix>&limit=
func (h *ClientHandler) SearchClients(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return JSON(c, http.StatusOK, []models.Client{})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultClientSearchLimit
	}
	limit = min(limit, maxClientSearchLimit)

	clients, err := h.clientRepository.SearchClientsByPrefix(c.Request().Context(), q, limit)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, clients)
}

func (h *ClientHandler) DeleteClient(c echo.Context) error {
	id, err := parseUintID(c)
	if err != nil {
		return err
	}
	if err := h.clientRepository.DeleteClient(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
