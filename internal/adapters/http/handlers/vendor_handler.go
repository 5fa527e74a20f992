package handlers

import (
	"errors"
	"time"

	"loco-verify/internal/core/services"
	"loco-verify/internal/pkg/pagination"
	"loco-verify/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VendorHandler handles vendor management endpoints (admin only)
type VendorHandler struct {
	vendorService *services.VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *services.VendorService) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
	}
}

// List handles vendor listing with pagination
// @Summary List vendors
// @Description List vendor accounts, newest first
// @Tags Vendors
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /vendors [get]
func (h *VendorHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	vendors, total, err := h.vendorService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.Unexpected(c, fiber.StatusInternalServerError, "VendorHandler.List", err)
	}

	data := make([]interface{}, 0, len(vendors))
	for _, v := range vendors {
		data = append(data, v.ToResponse())
	}

	return response.Success(c, "Vendors retrieved", pagination.NewResponse(data, params, total))
}

// GetByID handles single vendor retrieval with recent licenses
// @Summary Get vendor
// @Description Get a vendor with their most recent licenses
// @Tags Vendors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vendor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /vendors/{id} [get]
func (h *VendorHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	vendor, err := h.vendorService.GetByID(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVendorNotFound):
			return response.NotFound(c, "Vendor not found")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "VendorHandler.GetByID", err)
		}
	}

	now := time.Now()
	licenses := make([]interface{}, 0, len(vendor.Licenses))
	for i := range vendor.Licenses {
		licenses = append(licenses, presentLicense(&vendor.Licenses[i], now))
	}

	return response.Success(c, "Vendor retrieved", fiber.Map{
		"vendor":   vendor.ToResponse(),
		"licenses": licenses,
	})
}

// Licenses lists all licenses belonging to a vendor
// @Summary Vendor licenses
// @Description List all licenses belonging to a vendor
// @Tags Vendors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vendor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /vendors/{id}/licenses [get]
func (h *VendorHandler) Licenses(c *fiber.Ctx) error {
	id := c.Params("id")

	licenses, err := h.vendorService.Licenses(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVendorNotFound):
			return response.NotFound(c, "Vendor not found")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "VendorHandler.Licenses", err)
		}
	}

	return response.Success(c, "Licenses retrieved", presentLicenses(licenses, time.Now()))
}

// Update handles partial vendor updates
// @Summary Update vendor
// @Description Merge the provided fields onto a vendor; role and email are immutable
// @Tags Vendors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vendor ID"
// @Param body body services.UpdateVendorInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /vendors/{id} [patch]
func (h *VendorHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var input services.UpdateVendorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	vendor, err := h.vendorService.Update(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVendorNotFound):
			return response.NotFound(c, "Vendor not found")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "VendorHandler.Update", err)
		}
	}

	return response.Success(c, "Vendor updated successfully", vendor.ToResponse())
}

// Delete handles vendor deletion
// @Summary Delete vendor
// @Description Delete a vendor account
// @Tags Vendors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vendor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /vendors/{id} [delete]
func (h *VendorHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.vendorService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrVendorNotFound):
			return response.NotFound(c, "Vendor not found")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "VendorHandler.Delete", err)
		}
	}

	return response.Success(c, "Vendor deleted successfully", nil)
}
