package services

import (
	"context"
	"errors"

	"loco-verify/internal/adapters/persistence/models"
	"loco-verify/internal/adapters/persistence/repositories"
	"loco-verify/internal/core/domain"

	"gorm.io/gorm"
)

// recentLicenseCount is how many licenses are embedded in vendor detail
const recentLicenseCount = 5

// VendorService handles vendor management business logic
type VendorService struct {
	userRepo    repositories.UserRepository
	licenseRepo repositories.LicenseRepository
}

// NewVendorService creates a new vendor service
func NewVendorService(userRepo repositories.UserRepository, licenseRepo repositories.LicenseRepository) *VendorService {
	return &VendorService{
		userRepo:    userRepo,
		licenseRepo: licenseRepo,
	}
}

// List lists vendors with pagination, newest first
func (s *VendorService) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.ListByRole(ctx, string(domain.RoleVendor), offset, limit)
}

// GetByID gets a vendor with their most recent licenses
func (s *VendorService) GetByID(ctx context.Context, id string) (*models.User, error) {
	vendor, err := s.userRepo.GetByIDWithLicenses(ctx, id, recentLicenseCount)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	if vendor.Role != string(domain.RoleVendor) {
		return nil, ErrVendorNotFound
	}
	return vendor, nil
}

// UpdateVendorInput represents a partial vendor update
type UpdateVendorInput struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	ShopName *string `json:"shop_name,omitempty"`
}

// Update merges the provided fields onto a vendor. Role and email are
// immutable here.
func (s *VendorService) Update(ctx context.Context, id string, input *UpdateVendorInput) (*models.User, error) {
	vendor, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	if vendor.Role != string(domain.RoleVendor) {
		return nil, ErrVendorNotFound
	}

	if input.Name != nil {
		vendor.Name = *input.Name
	}
	if input.Phone != nil {
		vendor.Phone = input.Phone
	}
	if input.ShopName != nil {
		vendor.ShopName = input.ShopName
	}

	if err := s.userRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

// Delete deletes a vendor (admin flow)
func (s *VendorService) Delete(ctx context.Context, id string) error {
	vendor, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVendorNotFound
		}
		return err
	}
	if vendor.Role != string(domain.RoleVendor) {
		return ErrVendorNotFound
	}

	return s.userRepo.Delete(ctx, id)
}

// Licenses lists all licenses of a vendor
func (s *VendorService) Licenses(ctx context.Context, vendorID string) ([]*models.License, error) {
	if _, err := s.GetByID(ctx, vendorID); err != nil {
		return nil, err
	}
	return s.licenseRepo.ListByVendor(ctx, vendorID)
}
