package handlers

import (
	"loco-verify/internal/core/services"
	"loco-verify/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	statsService *services.StatsService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(statsService *services.StatsService) *DashboardHandler {
	return &DashboardHandler{
		statsService: statsService,
	}
}

// Admin returns system-wide license and vendor statistics
// @Summary Admin dashboard
// @Description System-wide license counts and vendor totals
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	data, err := h.statsService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.Unexpected(c, fiber.StatusInternalServerError, "DashboardHandler.Admin", err)
	}

	return response.Success(c, "Dashboard retrieved", data)
}

// Vendor returns the authenticated vendor's own license summary
// @Summary Vendor dashboard
// @Description The authenticated vendor's license counts and next expiry
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard/vendor [get]
func (h *DashboardHandler) Vendor(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.statsService.GetVendorDashboard(c.Context(), userID)
	if err != nil {
		return response.Unexpected(c, fiber.StatusInternalServerError, "DashboardHandler.Vendor", err)
	}

	return response.Success(c, "Dashboard retrieved", data)
}
