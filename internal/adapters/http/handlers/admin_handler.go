package handlers

import (
	"errors"
	"strings"
	"time"

	"loco-verify/internal/adapters/persistence/repositories"
	"loco-verify/internal/core/domain"
	"loco-verify/internal/core/services"
	"loco-verify/internal/pkg/pagination"
	"loco-verify/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin review console endpoints
type AdminHandler struct {
	licenseService *services.LicenseService
	statsService   *services.StatsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(licenseService *services.LicenseService, statsService *services.StatsService) *AdminHandler {
	return &AdminHandler{
		licenseService: licenseService,
		statsService:   statsService,
	}
}

// BulkReviewRequest represents a bulk review request body
type BulkReviewRequest struct {
	LicenseIDs []string `json:"licenseIds"`
	Action     string   `json:"action"`
}

// ListLicenses handles the admin review listing: licenses needing
// attention first, plus the aggregate statistics block
// @Summary Review console listing
// @Description List licenses for review with aggregate statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by license type"
// @Param needs_attention query bool false "Pending and expiring-soon licenses first"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/licenses [get]
func (h *AdminHandler) ListLicenses(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := &repositories.LicenseFilter{
		Status:         strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Type:           strings.TrimSpace(c.Query("type")),
		VendorID:       strings.TrimSpace(c.Query("vendorId")),
		NeedsAttention: c.QueryBool("needs_attention"),
	}

	if filter.Status != "" && !domain.ValidStatus(filter.Status) {
		return response.BadRequest(c, "Invalid status filter")
	}

	licenses, total, err := h.licenseService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.Unexpected(c, fiber.StatusInternalServerError, "AdminHandler.ListLicenses", err)
	}

	stats, err := h.statsService.LicenseStatistics(c.Context())
	if err != nil {
		return response.Unexpected(c, fiber.StatusInternalServerError, "AdminHandler.ListLicenses", err)
	}

	return response.Success(c, "Licenses retrieved", fiber.Map{
		"licenses":   presentLicenses(licenses, time.Now()),
		"pagination": pagination.GetMeta(params, total),
		"statistics": stats,
	})
}

// BulkReview applies APPROVE or REJECT to a batch of licenses.
// Only rows still pending are updated; the rest are skipped.
// @Summary Bulk review
// @Description Approve or reject a batch of pending licenses in one write
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BulkReviewRequest true "License IDs and action"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/licenses [post]
func (h *AdminHandler) BulkReview(c *fiber.Ctx) error {
	var req BulkReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if len(req.LicenseIDs) == 0 {
		return response.BadRequest(c, "licenseIds is required")
	}

	action := strings.ToUpper(strings.TrimSpace(req.Action))

	updated, err := h.licenseService.BulkReview(c.Context(), req.LicenseIDs, action)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAction):
			return response.BadRequest(c, "Action must be APPROVE or REJECT")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "AdminHandler.BulkReview", err)
		}
	}

	return response.Success(c, "Bulk review applied", fiber.Map{
		"requested": len(req.LicenseIDs),
		"updated":   updated,
		"action":    action,
	})
}
