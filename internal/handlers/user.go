package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/review-portal/backend/internal/middleware"
	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/anonto42/review-portal/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler manages the agency team accounts
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers team management routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.GetUsers)
	g.POST("/users", h.CreateUser)
	g.DELETE("/users/:id", h.DeleteUser)
}

func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, users)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}
	user, err := createUser(c.Request().Context(), h.userRepository.CreateUser, req, role)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, user)
}

// DeleteUser removes a team member. Admins cannot delete their own account.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseUintID(c)
	if err != nil {
		return err
	}
	if claims, ok := middleware.ClaimsFrom(c); ok && claims.UserID == id {
		return models.NewValidationError("id", "cannot delete your own account")
	}

	if err := h.userRepository.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func parseUintID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, models.NewValidationError("id", "must be a positive integer")
	}
	return uint(id), nil
}
