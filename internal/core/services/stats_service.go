package services

import (
	"context"
	"time"

	"loco-verify/internal/adapters/persistence/repositories"
	"loco-verify/internal/core/domain"
)

// StatsService aggregates license statistics for dashboards
type StatsService struct {
	licenseRepo repositories.LicenseRepository
	userRepo    repositories.UserRepository
}

// NewStatsService creates a new stats service
func NewStatsService(licenseRepo repositories.LicenseRepository, userRepo repositories.UserRepository) *StatsService {
	return &StatsService{
		licenseRepo: licenseRepo,
		userRepo:    userRepo,
	}
}

// LicenseStatistics is the statistics block on admin license listings
type LicenseStatistics struct {
	ByStatus          []repositories.StatusCount `json:"by_status"`
	ByType            []repositories.TypeCount   `json:"by_type"`
	PendingCount      int64                      `json:"pending_count"`
	ExpiringSoonCount int64                      `json:"expiring_soon_count"`
	TotalLicenses     int64                      `json:"total_licenses"`
}

// LicenseStatistics builds the grouped license counts
func (s *StatsService) LicenseStatistics(ctx context.Context) (*LicenseStatistics, error) {
	byStatus, err := s.licenseRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byType, err := s.licenseRepo.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.licenseRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	expiringSoon, err := s.licenseRepo.CountExpiringSoon(ctx, domain.RenewalWindowDays*24*time.Hour)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, sc := range byStatus {
		total += sc.Count
	}

	return &LicenseStatistics{
		ByStatus:          byStatus,
		ByType:            byType,
		PendingCount:      pending,
		ExpiringSoonCount: expiringSoon,
		TotalLicenses:     total,
	}, nil
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	TotalVendors int64              `json:"total_vendors"`
	TotalAdmins  int64              `json:"total_admins"`
	Licenses     *LicenseStatistics `json:"licenses"`
}

// GetAdminDashboard returns admin dashboard data
func (s *StatsService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	stats, err := s.LicenseStatistics(ctx)
	if err != nil {
		return nil, err
	}

	vendors, err := s.userRepo.CountByRole(ctx, string(domain.RoleVendor))
	if err != nil {
		return nil, err
	}

	admins, err := s.userRepo.CountByRole(ctx, string(domain.RoleAdmin))
	if err != nil {
		return nil, err
	}

	return &AdminDashboardData{
		TotalVendors: vendors,
		TotalAdmins:  admins,
		Licenses:     stats,
	}, nil
}

// VendorDashboardData represents a vendor's own dashboard data
type VendorDashboardData struct {
	TotalLicenses  int64            `json:"total_licenses"`
	CountsByStatus map[string]int64 `json:"counts_by_status"`
	NextExpiry     *time.Time       `json:"next_expiry"`
}

// GetVendorDashboard summarizes a vendor's licenses using their
// effective (read-time) status
func (s *StatsService) GetVendorDashboard(ctx context.Context, vendorID string) (*VendorDashboardData, error) {
	licenses, err := s.licenseRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	counts := make(map[string]int64)
	var nextExpiry *time.Time

	for _, l := range licenses {
		status := EffectiveStatus(l, now)
		counts[string(status)]++

		if status == domain.StatusApproved && l.ExpiryDate != nil {
			if nextExpiry == nil || l.ExpiryDate.Before(*nextExpiry) {
				nextExpiry = l.ExpiryDate
			}
		}
	}

	return &VendorDashboardData{
		TotalLicenses:  int64(len(licenses)),
		CountsByStatus: counts,
		NextExpiry:     nextExpiry,
	}, nil
}
