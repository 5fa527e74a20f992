package repositories

import (
	"context"
	"time"

	"loco-verify/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDWithLicenses(ctx context.Context, id string, recentLicenses int) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	ListByRole(ctx context.Context, role string, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// LicenseFilter holds list filters for licenses
type LicenseFilter struct {
	Status         string
	Type           string
	VendorID       string
	NeedsAttention bool
}

// StatusCount is a grouped count by status
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// TypeCount is a grouped count by license type
type TypeCount struct {
	LicenseType string `json:"license_type"`
	Count       int64  `json:"count"`
}

// LicenseRepository defines license repository interface
type LicenseRepository interface {
	Create(ctx context.Context, license *models.License) error
	GetByID(ctx context.Context, id string) (*models.License, error)
	Update(ctx context.Context, license *models.License) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *LicenseFilter, offset, limit int) ([]*models.License, int64, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*models.License, error)
	BulkUpdateStatus(ctx context.Context, ids []string, fromStatus string, updates map[string]interface{}) (int64, error)
	MarkExpired(ctx context.Context, now time.Time) (int64, error)

	// Statistics
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountByType(ctx context.Context) ([]TypeCount, error)
	CountPending(ctx context.Context) (int64, error)
	CountExpiringSoon(ctx context.Context, within time.Duration) (int64, error)
}
