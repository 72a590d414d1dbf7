package handlers

import (
	"net/http"

	"github.com/anonto42/review-portal/backend/internal/services"
	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterDashboardRoutes(g *echo.Group) {
	g.GET("/dashboard/activity", h.GetActivity)
}

func (h *DashboardHandler) GetActivity(c echo.Context) error {
	return JSON(c, http.StatusOK, h.dashboardService.Activity(c.Request().Context()))
}
