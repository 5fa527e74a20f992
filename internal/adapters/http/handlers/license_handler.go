package handlers

import (
	"errors"
	"strings"
	"time"

	"loco-verify/internal/adapters/persistence/models"
	"loco-verify/internal/adapters/persistence/repositories"
	"loco-verify/internal/config"
	"loco-verify/internal/core/domain"
	"loco-verify/internal/core/services"
	"loco-verify/internal/pkg/pagination"
	"loco-verify/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LicenseHandler handles license endpoints
type LicenseHandler struct {
	licenseService *services.LicenseService
	uploadService  *services.UploadService
	cfg            *config.Config
}

// NewLicenseHandler creates a new license handler
func NewLicenseHandler(licenseService *services.LicenseService, uploadService *services.UploadService, cfg *config.Config) *LicenseHandler {
	return &LicenseHandler{
		licenseService: licenseService,
		uploadService:  uploadService,
		cfg:            cfg,
	}
}

// presentLicense builds the license DTO with its read-time status, so
// an APPROVED license past its expiry date is reported as EXPIRED
func presentLicense(l *models.License, now time.Time) *models.LicenseResponse {
	resp := l.ToResponse()
	resp.Status = string(services.EffectiveStatus(l, now))
	return resp
}

// presentLicenses maps a slice of licenses to DTOs
func presentLicenses(licenses []*models.License, now time.Time) []*models.LicenseResponse {
	out := make([]*models.LicenseResponse, 0, len(licenses))
	for _, l := range licenses {
		out = append(out, presentLicense(l, now))
	}
	return out
}

// requesterCanAccess reports whether the requester owns the license or
// is an admin
func requesterCanAccess(c *fiber.Ctx, l *models.License) bool {
	role, _ := c.Locals("role").(string)
	if role == string(domain.RoleAdmin) {
		return true
	}
	userID, _ := c.Locals("userID").(string)
	return userID != "" && userID == l.VendorID
}

// CreateLicenseRequest represents admin license creation request body
type CreateLicenseRequest struct {
	VendorID      string `json:"vendor_id"`
	LicenseType   string `json:"license_type"`
	IDProofLink   string `json:"id_proof_link"`
	ShopPhotoLink string `json:"shop_photo_link"`
}

// RenewRequest represents a renewal submission body
type RenewRequest struct {
	RenewalPeriod int `json:"renewal_period"`
}

// List handles license listing with filters and pagination.
// Vendors only ever see their own licenses; admins see everything.
// @Summary List licenses
// @Description List licenses with status/type filters and pagination
// @Tags Licenses
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by license type"
// @Param vendorId query string false "Filter by vendor (admin only)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /licenses [get]
func (h *LicenseHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := &repositories.LicenseFilter{
		Status: strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Type:   strings.TrimSpace(c.Query("type")),
	}

	role, _ := c.Locals("role").(string)
	if role == string(domain.RoleAdmin) {
		filter.VendorID = strings.TrimSpace(c.Query("vendorId"))
	} else {
		// Vendor scope: always restricted to own licenses
		userID, _ := c.Locals("userID").(string)
		filter.VendorID = userID
	}

	if filter.Status != "" && !domain.ValidStatus(filter.Status) {
		return response.BadRequest(c, "Invalid status filter")
	}

	licenses, total, err := h.licenseService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.Unexpected(c, fiber.StatusInternalServerError, "LicenseHandler.List", err)
	}

	result := pagination.NewResponse(presentLicenses(licenses, time.Now()), params, total)
	return response.Success(c, "Licenses retrieved", result)
}

// MyLicenses lists the authenticated vendor's licenses
// @Summary My licenses
// @Description List all licenses belonging to the authenticated vendor
// @Tags Licenses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /licenses/my [get]
func (h *LicenseHandler) MyLicenses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	licenses, err := h.licenseService.ListByVendor(c.Context(), userID)
	if err != nil {
		return response.Unexpected(c, fiber.StatusInternalServerError, "LicenseHandler.MyLicenses", err)
	}

	return response.Success(c, "Licenses retrieved", presentLicenses(licenses, time.Now()))
}

// GetByID handles single license retrieval
// @Summary Get license
// @Description Get a license by ID (owner or admin)
// @Tags Licenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "License ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /licenses/{id} [get]
func (h *LicenseHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	license, err := h.licenseService.GetByID(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLicenseNotFound):
			return response.NotFound(c, "License not found")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "LicenseHandler.GetByID", err)
		}
	}

	if !requesterCanAccess(c, license) {
		return response.Forbidden(c, "You don't have permission to access this license")
	}

	return response.Success(c, "License retrieved", presentLicense(license, time.Now()))
}

// Create handles admin license creation
// @Summary Create license
// @Description Create a license for a vendor (admin only); new licenses start PENDING
// @Tags Licenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateLicenseRequest true "License data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /licenses [post]
func (h *LicenseHandler) Create(c *fiber.Ctx) error {
	var req CreateLicenseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.VendorID == "" {
		return response.BadRequest(c, "Vendor ID is required")
	}
	if req.LicenseType == "" {
		return response.BadRequest(c, "License type is required")
	}

	input := &services.CreateInput{
		VendorID:      strings.TrimSpace(req.VendorID),
		LicenseType:   strings.TrimSpace(req.LicenseType),
		IDProofLink:   strings.TrimSpace(req.IDProofLink),
		ShopPhotoLink: strings.TrimSpace(req.ShopPhotoLink),
	}

	license, err := h.licenseService.Create(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVendorNotFound):
			return response.NotFound(c, "Vendor not found")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "LicenseHandler.Create", err)
		}
	}

	return response.Created(c, "License created successfully", presentLicense(license, time.Now()))
}

// Apply handles the vendor application flow with document uploads
// @Summary Apply for a license
// @Description Submit a license application with ID proof and shop photo documents (multipart)
// @Tags Licenses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param licenseType formData string true "License type"
// @Param idProof formData file true "ID proof document"
// @Param shopPhoto formData file true "Shop photo"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /licenses/apply [post]
func (h *LicenseHandler) Apply(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	licenseType := strings.TrimSpace(c.FormValue("licenseType"))
	if licenseType == "" {
		return response.BadRequest(c, "License type is required")
	}

	idProofURL, err := h.saveFormFile(c, services.FieldIDProof)
	if err != nil {
		return h.uploadError(c, "ID proof", err)
	}

	shopPhotoURL, err := h.saveFormFile(c, services.FieldShopPhoto)
	if err != nil {
		return h.uploadError(c, "Shop photo", err)
	}

	license, err := h.licenseService.Apply(c.Context(), &services.ApplyInput{
		VendorID:     userID,
		LicenseType:  licenseType,
		IDProofURL:   idProofURL,
		ShopPhotoURL: shopPhotoURL,
	})
	if err != nil {
		return response.Unexpected(c, fiber.StatusInternalServerError, "LicenseHandler.Apply", err)
	}

	return response.Created(c, "Application submitted successfully", presentLicense(license, time.Now()))
}

// saveFormFile stores a multipart file and returns its public URL
func (h *LicenseHandler) saveFormFile(c *fiber.Ctx, field string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", domain.ErrUploadInvalid
	}

	if fileHeader.Size > int64(h.cfg.Upload.MaxMB)*1024*1024 {
		return "", domain.ErrUploadTooLarge
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", domain.ErrUploadFailed
	}
	defer f.Close()

	return h.uploadService.SaveFile(c.Context(), fileHeader.Filename, f)
}

// uploadError maps document storage failures to responses
func (h *LicenseHandler) uploadError(c *fiber.Ctx, label string, err error) error {
	switch {
	case errors.Is(err, domain.ErrUploadInvalid):
		return response.BadRequest(c, label+" file is required")
	case errors.Is(err, domain.ErrUploadTooLarge):
		return response.BadRequest(c, label+" file exceeds the size limit")
	default:
		return response.Unexpected(c, fiber.StatusInternalServerError, "LicenseHandler.upload", err)
	}
}

// Update handles partial license updates (admin only)
// @Summary Update license
// @Description Merge the provided fields onto a license; status changes follow the lifecycle rules
// @Tags Licenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "License ID"
// @Param body body services.UpdateInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /licenses/{id} [patch]
func (h *LicenseHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var input services.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	license, err := h.licenseService.Update(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLicenseNotFound):
			return response.NotFound(c, "License not found")
		case errors.Is(err, services.ErrInvalidStatus):
			return response.BadRequest(c, "Invalid license status")
		case errors.Is(err, services.ErrIllegalTransition):
			return response.BadRequest(c, "Status change not permitted from current state")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "LicenseHandler.Update", err)
		}
	}

	return response.Success(c, "License updated successfully", presentLicense(license, time.Now()))
}

// Delete handles license deletion (admin only)
// @Summary Delete license
// @Description Delete a license
// @Tags Licenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "License ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /licenses/{id} [delete]
func (h *LicenseHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.licenseService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrLicenseNotFound):
			return response.NotFound(c, "License not found")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "LicenseHandler.Delete", err)
		}
	}

	return response.Success(c, "License deleted successfully", nil)
}

// Approve handles license approval (admin only)
// @Summary Approve license
// @Description Approve a pending license, stamping issue date and a 180-day validity window
// @Tags Licenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "License ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /licenses/{id}/approve [put]
func (h *LicenseHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")

	license, err := h.licenseService.Approve(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLicenseNotFound):
			return response.NotFound(c, "License not found")
		case errors.Is(err, services.ErrIllegalTransition):
			return response.BadRequest(c, "Only pending licenses can be approved")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "LicenseHandler.Approve", err)
		}
	}

	return response.Success(c, "License approved successfully", presentLicense(license, time.Now()))
}

// Reject handles license rejection (admin only)
// @Summary Reject license
// @Description Reject a pending license
// @Tags Licenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "License ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /licenses/{id}/reject [put]
func (h *LicenseHandler) Reject(c *fiber.Ctx) error {
	id := c.Params("id")

	license, err := h.licenseService.Reject(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLicenseNotFound):
			return response.NotFound(c, "License not found")
		case errors.Is(err, services.ErrIllegalTransition):
			return response.BadRequest(c, "Only pending licenses can be rejected")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "LicenseHandler.Reject", err)
		}
	}

	return response.Success(c, "License rejected", presentLicense(license, time.Now()))
}

// Renew handles renewal submission (owner or admin)
// @Summary Renew license
// @Description Submit a renewal; the expiry extends by the requested period in calendar months
// @Tags Licenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "License ID"
// @Param body body RenewRequest false "Renewal period in months"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /licenses/{id}/renew [post]
func (h *LicenseHandler) Renew(c *fiber.Ctx) error {
	id := c.Params("id")

	var req RenewRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	current, err := h.licenseService.GetByID(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLicenseNotFound):
			return response.NotFound(c, "License not found")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "LicenseHandler.Renew", err)
		}
	}
	if !requesterCanAccess(c, current) {
		return response.Forbidden(c, "You don't have permission to renew this license")
	}

	license, details, err := h.licenseService.Renew(c.Context(), id, req.RenewalPeriod)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLicenseNotFound):
			return response.NotFound(c, "License not found")
		case errors.Is(err, services.ErrIllegalTransition):
			return response.BadRequest(c, "License is not eligible for renewal")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "LicenseHandler.Renew", err)
		}
	}

	return response.Success(c, "Renewal submitted successfully", fiber.Map{
		"license": presentLicense(license, time.Now()),
		"renewal": details,
	})
}

// RenewalEligibility reports whether a license can be renewed right now
// @Summary Renewal eligibility
// @Description Check whether a license is within its renewal window
// @Tags Licenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "License ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /licenses/{id}/renew [get]
func (h *LicenseHandler) RenewalEligibility(c *fiber.Ctx) error {
	id := c.Params("id")

	license, info, err := h.licenseService.RenewalEligibility(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLicenseNotFound):
			return response.NotFound(c, "License not found")
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "LicenseHandler.RenewalEligibility", err)
		}
	}

	if !requesterCanAccess(c, license) {
		return response.Forbidden(c, "You don't have permission to access this license")
	}

	return response.Success(c, info.Message, fiber.Map{
		"license":     presentLicense(license, time.Now()),
		"eligibility": info,
	})
}
