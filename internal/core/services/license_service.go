package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"loco-verify/internal/adapters/persistence/models"
	"loco-verify/internal/adapters/persistence/repositories"
	"loco-verify/internal/core/domain"

	"gorm.io/gorm"
)

// License service errors
var (
	ErrLicenseNotFound   = errors.New("license not found")
	ErrVendorNotFound    = errors.New("vendor not found")
	ErrIllegalTransition = errors.New("license status change not permitted from current state")
	ErrInvalidStatus     = errors.New("invalid license status")
	ErrInvalidAction     = errors.New("action must be APPROVE or REJECT")
)

// legalTransitions is the license lifecycle state machine. Creation
// always yields PENDING; EXPIRED is additionally derived at read time
// from APPROVED licenses past their expiry date.
var legalTransitions = map[domain.LicenseStatus][]domain.LicenseStatus{
	domain.StatusPending:        {domain.StatusApproved, domain.StatusRejected},
	domain.StatusApproved:       {domain.StatusExpired, domain.StatusPendingRenewal},
	domain.StatusExpired:        {domain.StatusPendingRenewal},
	domain.StatusPendingRenewal: {domain.StatusApproved, domain.StatusRejected},
	domain.StatusRejected:       {},
}

// LicenseService handles license lifecycle business logic
type LicenseService struct {
	licenseRepo repositories.LicenseRepository
	userRepo    repositories.UserRepository
}

// NewLicenseService creates a new license service
func NewLicenseService(licenseRepo repositories.LicenseRepository, userRepo repositories.UserRepository) *LicenseService {
	return &LicenseService{
		licenseRepo: licenseRepo,
		userRepo:    userRepo,
	}
}

// canTransition reports whether moving from one stored status to
// another is legal
func canTransition(from, to domain.LicenseStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range legalTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}

// EffectiveStatus derives the read-time status of a license: an
// APPROVED license past its expiry date reads as EXPIRED without a
// stored transition.
func EffectiveStatus(license *models.License, now time.Time) domain.LicenseStatus {
	status := domain.LicenseStatus(license.Status)
	if status == domain.StatusApproved && license.ExpiryDate != nil && license.ExpiryDate.Before(now) {
		return domain.StatusExpired
	}
	return status
}

// CreateInput represents admin license creation input
type CreateInput struct {
	VendorID      string `json:"vendor_id"`
	LicenseType   string `json:"license_type"`
	IDProofLink   string `json:"id_proof_link,omitempty"`
	ShopPhotoLink string `json:"shop_photo_link,omitempty"`
}

// Create creates a license for a vendor (admin flow). New licenses
// always start PENDING.
func (s *LicenseService) Create(ctx context.Context, input *CreateInput) (*models.License, error) {
	vendor, err := s.userRepo.GetByID(ctx, input.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	if vendor.Role != string(domain.RoleVendor) {
		return nil, ErrVendorNotFound
	}

	license := &models.License{
		VendorID:    input.VendorID,
		LicenseType: input.LicenseType,
		Status:      string(domain.StatusPending),
	}
	if input.IDProofLink != "" {
		license.IDProofLink = &input.IDProofLink
	}
	if input.ShopPhotoLink != "" {
		license.ShopPhotoLink = &input.ShopPhotoLink
	}

	if err := s.licenseRepo.Create(ctx, license); err != nil {
		return nil, err
	}

	return s.licenseRepo.GetByID(ctx, license.ID)
}

// ApplyInput represents the vendor application flow input, with
// document URLs already stored by the upload adapter
type ApplyInput struct {
	VendorID     string
	LicenseType  string
	IDProofURL   string
	ShopPhotoURL string
}

// Apply submits a vendor license application
func (s *LicenseService) Apply(ctx context.Context, input *ApplyInput) (*models.License, error) {
	license := &models.License{
		VendorID:      input.VendorID,
		LicenseType:   input.LicenseType,
		Status:        string(domain.StatusPending),
		IDProofLink:   &input.IDProofURL,
		ShopPhotoLink: &input.ShopPhotoURL,
	}

	if err := s.licenseRepo.Create(ctx, license); err != nil {
		return nil, err
	}

	return license, nil
}

// GetByID gets a license by ID
func (s *LicenseService) GetByID(ctx context.Context, id string) (*models.License, error) {
	license, err := s.licenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, err
	}
	return license, nil
}

// List lists licenses with filters and pagination
func (s *LicenseService) List(ctx context.Context, filter *repositories.LicenseFilter, offset, limit int) ([]*models.License, int64, error) {
	return s.licenseRepo.List(ctx, filter, offset, limit)
}

// ListByVendor lists all licenses belonging to a vendor
func (s *LicenseService) ListByVendor(ctx context.Context, vendorID string) ([]*models.License, error) {
	return s.licenseRepo.ListByVendor(ctx, vendorID)
}

// UpdateInput represents a partial license update (admin flow)
type UpdateInput struct {
	LicenseType    *string `json:"license_type,omitempty"`
	Status         *string `json:"status,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	ValidityPeriod *int    `json:"validity_period,omitempty"`
	IDProofLink    *string `json:"id_proof_link,omitempty"`
	ShopPhotoLink  *string `json:"shop_photo_link,omitempty"`
}

// Update merges the provided fields onto a license. Status changes are
// validated against the lifecycle state machine; moving into APPROVED
// stamps the issue and expiry dates.
func (s *LicenseService) Update(ctx context.Context, id string, input *UpdateInput) (*models.License, error) {
	license, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !domain.ValidStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		from := domain.LicenseStatus(license.Status)
		to := domain.LicenseStatus(*input.Status)
		if !canTransition(from, to) {
			return nil, ErrIllegalTransition
		}
		if to == domain.StatusApproved && from != domain.StatusApproved {
			now := time.Now()
			expiry := now.AddDate(0, 0, domain.ApprovalValidityDays)
			license.IssueDate = &now
			license.ExpiryDate = &expiry
		}
		license.Status = *input.Status
	}
	if input.LicenseType != nil {
		license.LicenseType = *input.LicenseType
	}
	if input.Notes != nil {
		license.Notes = *input.Notes
	}
	if input.ValidityPeriod != nil {
		license.ValidityPeriod = input.ValidityPeriod
	}
	if input.IDProofLink != nil {
		license.IDProofLink = input.IDProofLink
	}
	if input.ShopPhotoLink != nil {
		license.ShopPhotoLink = input.ShopPhotoLink
	}

	if err := s.licenseRepo.Update(ctx, license); err != nil {
		return nil, err
	}

	return license, nil
}

// Delete deletes a license (admin flow)
func (s *LicenseService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.licenseRepo.Delete(ctx, id)
}

// Approve approves a pending license, stamping issue date and the
// 180-day validity window
func (s *LicenseService) Approve(ctx context.Context, id string) (*models.License, error) {
	license, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if license.Status != string(domain.StatusPending) {
		return nil, ErrIllegalTransition
	}

	now := time.Now()
	expiry := now.AddDate(0, 0, domain.ApprovalValidityDays)

	license.Status = string(domain.StatusApproved)
	license.IssueDate = &now
	license.ExpiryDate = &expiry

	if err := s.licenseRepo.Update(ctx, license); err != nil {
		return nil, err
	}

	return license, nil
}

// Reject rejects a pending license. No date fields are set.
func (s *LicenseService) Reject(ctx context.Context, id string) (*models.License, error) {
	license, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if license.Status != string(domain.StatusPending) {
		return nil, ErrIllegalTransition
	}

	license.Status = string(domain.StatusRejected)

	if err := s.licenseRepo.Update(ctx, license); err != nil {
		return nil, err
	}

	return license, nil
}

// RenewalDetails reports the outcome of a renewal submission
type RenewalDetails struct {
	PreviousExpiry *time.Time `json:"previous_expiry"`
	NewExpiry      time.Time  `json:"new_expiry"`
	RenewalPeriod  int        `json:"renewal_period"`
}

// Renew submits a renewal for a license. Only legal from APPROVED or
// EXPIRED (effective status). The new expiry extends the current one by
// the requested period in calendar months, defaulting to the stored
// validity period, then 12 months. Calendar addition follows Go's
// AddDate normalization (Jan 31 + 1 month rolls into March).
func (s *LicenseService) Renew(ctx context.Context, id string, renewalPeriod int) (*models.License, *RenewalDetails, error) {
	license, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	effective := EffectiveStatus(license, now)
	if effective != domain.StatusApproved && effective != domain.StatusExpired {
		return nil, nil, ErrIllegalTransition
	}

	period := renewalPeriod
	if period <= 0 {
		if license.ValidityPeriod != nil && *license.ValidityPeriod > 0 {
			period = *license.ValidityPeriod
		} else {
			period = domain.DefaultRenewalMonths
		}
	}

	currentExpiry := now
	if license.ExpiryDate != nil {
		currentExpiry = *license.ExpiryDate
	}
	newExpiry := currentExpiry.AddDate(0, period, 0)

	details := &RenewalDetails{
		PreviousExpiry: license.ExpiryDate,
		NewExpiry:      newExpiry,
		RenewalPeriod:  period,
	}

	license.Status = string(domain.StatusPendingRenewal)
	license.ExpiryDate = &newExpiry
	license.ValidityPeriod = &period
	license.RenewedAt = &now

	if err := s.licenseRepo.Update(ctx, license); err != nil {
		return nil, nil, err
	}

	return license, details, nil
}

// EligibilityInfo reports whether a license can be renewed right now
type EligibilityInfo struct {
	Eligible        bool       `json:"eligible"`
	CurrentStatus   string     `json:"current_status"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	DaysUntilExpiry *int       `json:"days_until_expiry"`
	CanRenew        bool       `json:"can_renew"`
	Message         string     `json:"message"`
}

// RenewalEligibility computes the renewal eligibility of a license.
// Pure derivation, no stored state changes.
func (s *LicenseService) RenewalEligibility(ctx context.Context, id string) (*models.License, *EligibilityInfo, error) {
	license, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	effective := EffectiveStatus(license, now)
	eligible := effective == domain.StatusApproved || effective == domain.StatusExpired

	var daysUntilExpiry *int
	if license.ExpiryDate != nil {
		days := int(math.Ceil(license.ExpiryDate.Sub(now).Hours() / 24))
		daysUntilExpiry = &days
	}

	canRenew := eligible && (daysUntilExpiry == nil || *daysUntilExpiry <= domain.RenewalWindowDays)

	message := "License is eligible for renewal"
	switch {
	case !eligible:
		message = fmt.Sprintf("License cannot be renewed. Current status: %s", effective)
	case daysUntilExpiry != nil && *daysUntilExpiry > domain.RenewalWindowDays:
		message = fmt.Sprintf("License can be renewed in %d days", *daysUntilExpiry-domain.RenewalWindowDays)
	}

	info := &EligibilityInfo{
		Eligible:        eligible,
		CurrentStatus:   string(effective),
		ExpiryDate:      license.ExpiryDate,
		DaysUntilExpiry: daysUntilExpiry,
		CanRenew:        canRenew,
		Message:         message,
	}

	return license, info, nil
}

// BulkReview applies APPROVE or REJECT to a batch of license ids in one
// conditional write. Only rows still PENDING are updated; others are
// silently skipped. Returns the number of rows updated.
func (s *LicenseService) BulkReview(ctx context.Context, ids []string, action string) (int64, error) {
	if action != domain.ActionApprove && action != domain.ActionReject {
		return 0, ErrInvalidAction
	}

	updates := map[string]interface{}{}
	if action == domain.ActionApprove {
		now := time.Now()
		updates["status"] = string(domain.StatusApproved)
		updates["issue_date"] = now
		updates["expiry_date"] = now.AddDate(0, 0, domain.ApprovalValidityDays)
	} else {
		updates["status"] = string(domain.StatusRejected)
	}

	return s.licenseRepo.BulkUpdateStatus(ctx, ids, string(domain.StatusPending), updates)
}
