package handlers

import (
	"errors"
	"strings"

	"loco-verify/internal/config"
	"loco-verify/internal/core/domain"
	"loco-verify/internal/core/services"
	"loco-verify/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler handles document upload endpoints (admin only)
type UploadHandler struct {
	uploadService *services.UploadService
	cfg           *config.Config
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *services.UploadService, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		cfg:           cfg,
	}
}

// Upload stores a document and attaches its URL to a license
// @Summary Upload document
// @Description Store a document and write its URL onto the matching license field
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document file"
// @Param licenseId formData string true "License ID"
// @Param field formData string true "Target field (idProof or shopPhoto)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	licenseID := strings.TrimSpace(c.FormValue("licenseId"))
	field := strings.TrimSpace(c.FormValue("field"))

	if licenseID == "" {
		return response.BadRequest(c, "licenseId is required")
	}
	if field == "" {
		return response.BadRequest(c, "field is required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}

	if fileHeader.Size > int64(h.cfg.Upload.MaxMB)*1024*1024 {
		return response.BadRequest(c, "File exceeds the size limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return response.Unexpected(c, fiber.StatusInternalServerError, "UploadHandler.Upload", err)
	}
	defer f.Close()

	url, err := h.uploadService.AttachDocument(c.Context(), licenseID, field, fileHeader.Filename, f)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLicenseNotFound):
			return response.NotFound(c, "License not found")
		case errors.Is(err, domain.ErrUploadInvalid):
			return response.BadRequest(c, "Missing upload fields")
		case errors.Is(err, domain.ErrUploadFailed):
			return response.Unexpected(c, fiber.StatusInternalServerError, "UploadHandler.Upload", err)
		default:
			return response.Unexpected(c, fiber.StatusInternalServerError, "UploadHandler.Upload", err)
		}
	}

	return response.Success(c, "Document uploaded successfully", fiber.Map{
		"url":   url,
		"field": field,
	})
}
