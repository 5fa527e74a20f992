package repositories

import (
	"context"
	"time"

	"loco-verify/internal/adapters/persistence/models"
	"loco-verify/internal/core/domain"

	"gorm.io/gorm"
)

// licenseRepository implements LicenseRepository interface
type licenseRepository struct {
	db *gorm.DB
}

// NewLicenseRepository creates a new license repository
func NewLicenseRepository(db *gorm.DB) LicenseRepository {
	return &licenseRepository{db: db}
}

// Create creates a new license
func (r *licenseRepository) Create(ctx context.Context, license *models.License) error {
	return r.db.WithContext(ctx).Create(license).Error
}

// GetByID gets a license by ID with its vendor preloaded
func (r *licenseRepository) GetByID(ctx context.Context, id string) (*models.License, error) {
	var license models.License
	err := r.db.WithContext(ctx).Preload("Vendor").Where("id = ?", id).First(&license).Error
	if err != nil {
		return nil, err
	}
	return &license, nil
}

// Update updates a license
func (r *licenseRepository) Update(ctx context.Context, license *models.License) error {
	return r.db.WithContext(ctx).Save(license).Error
}

// Delete soft deletes a license
func (r *licenseRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.License{}).Error
}

// applyFilter builds the WHERE clause for list queries
func (r *licenseRepository) applyFilter(query *gorm.DB, filter *LicenseFilter) *gorm.DB {
	if filter == nil {
		return query
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("license_type = ?", filter.Type)
	}
	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.NeedsAttention {
		cutoff := time.Now().Add(domain.RenewalWindowDays * 24 * time.Hour)
		query = query.Where(
			"status = ? OR (status = ? AND expiry_date <= ?)",
			domain.StatusPending, domain.StatusApproved, cutoff,
		)
	}

	return query
}

// List lists licenses with filters and pagination.
// Default ordering is application date descending; "needs attention"
// queries order by status then soonest expiry.
func (r *licenseRepository) List(ctx context.Context, filter *LicenseFilter, offset, limit int) ([]*models.License, int64, error) {
	var licenses []*models.License
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.License{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Vendor")
	if filter != nil && filter.NeedsAttention {
		query = query.Order("status ASC").Order("expiry_date ASC")
	} else {
		query = query.Order("application_date DESC")
	}

	if err := query.Offset(offset).Limit(limit).Find(&licenses).Error; err != nil {
		return nil, 0, err
	}

	return licenses, total, nil
}

// ListByVendor lists all licenses of a vendor, newest application first
func (r *licenseRepository) ListByVendor(ctx context.Context, vendorID string) ([]*models.License, error) {
	var licenses []*models.License
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("application_date DESC").
		Find(&licenses).Error
	if err != nil {
		return nil, err
	}
	return licenses, nil
}

// BulkUpdateStatus applies updates to the given ids that are still in
// fromStatus, as a single conditional batch write. Rows in any other
// status simply do not match and are skipped.
func (r *licenseRepository) BulkUpdateStatus(ctx context.Context, ids []string, fromStatus string, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.License{}).
		Where("id IN ? AND status = ?", ids, fromStatus).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// MarkExpired persists the EXPIRED status on approved licenses past expiry
func (r *licenseRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.License{}).
		Where("status = ? AND expiry_date IS NOT NULL AND expiry_date < ?", domain.StatusApproved, now).
		Update("status", domain.StatusExpired)
	return result.RowsAffected, result.Error
}

// CountByStatus counts licenses grouped by status
func (r *licenseRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).
		Model(&models.License{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error
	return counts, err
}

// CountByType counts licenses grouped by license type
func (r *licenseRepository) CountByType(ctx context.Context) ([]TypeCount, error) {
	var counts []TypeCount
	err := r.db.WithContext(ctx).
		Model(&models.License{}).
		Select("license_type, COUNT(*) as count").
		Group("license_type").
		Scan(&counts).Error
	return counts, err
}

// CountPending counts licenses awaiting review
func (r *licenseRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.License{}).
		Where("status = ?", domain.StatusPending).
		Count(&count).Error
	return count, err
}

// CountExpiringSoon counts approved licenses expiring within the window
func (r *licenseRepository) CountExpiringSoon(ctx context.Context, within time.Duration) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.License{}).
		Where("status = ? AND expiry_date <= ?", domain.StatusApproved, time.Now().Add(within)).
		Count(&count).Error
	return count, err
}
