package services

import (
	"context"
	"testing"
	"time"

	"loco-verify/internal/adapters/persistence/models"
	"loco-verify/internal/core/domain"
)

func TestGetVendorDashboardUsesEffectiveStatus(t *testing.T) {
	licenseRepo := newFakeLicenseRepo()
	userRepo := newFakeUserRepo()
	svc := NewStatsService(licenseRepo, userRepo)

	now := time.Now()
	future := now.AddDate(0, 0, 60)
	past := now.AddDate(0, 0, -5)

	seedLicense(licenseRepo, "l1", "v1", string(domain.StatusApproved), &future)
	seedLicense(licenseRepo, "l2", "v1", string(domain.StatusApproved), &past)
	seedLicense(licenseRepo, "l3", "v1", string(domain.StatusPending), nil)
	seedLicense(licenseRepo, "l4", "other", string(domain.StatusApproved), &future)

	data, err := svc.GetVendorDashboard(context.Background(), "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.TotalLicenses != 3 {
		t.Errorf("total = %d, want 3 (other vendors excluded)", data.TotalLicenses)
	}
	if data.CountsByStatus[string(domain.StatusApproved)] != 1 {
		t.Errorf("approved count = %d, want 1", data.CountsByStatus[string(domain.StatusApproved)])
	}
	if data.CountsByStatus[string(domain.StatusExpired)] != 1 {
		t.Errorf("expired count = %d, want 1 (stale APPROVED reads as EXPIRED)", data.CountsByStatus[string(domain.StatusExpired)])
	}
	if data.NextExpiry == nil || !data.NextExpiry.Equal(future) {
		t.Errorf("next expiry = %v, want %v", data.NextExpiry, future)
	}
}

func TestGetAdminDashboardCounts(t *testing.T) {
	licenseRepo := newFakeLicenseRepo()
	userRepo := newFakeUserRepo()
	svc := NewStatsService(licenseRepo, userRepo)

	userRepo.users["a1"] = &models.User{ID: "a1", Role: string(domain.RoleAdmin)}
	userRepo.users["v1"] = &models.User{ID: "v1", Role: string(domain.RoleVendor)}
	userRepo.users["v2"] = &models.User{ID: "v2", Role: string(domain.RoleVendor)}

	seedLicense(licenseRepo, "l1", "v1", string(domain.StatusPending), nil)
	seedLicense(licenseRepo, "l2", "v2", string(domain.StatusApproved), nil)

	data, err := svc.GetAdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.TotalVendors != 2 {
		t.Errorf("vendors = %d, want 2", data.TotalVendors)
	}
	if data.TotalAdmins != 1 {
		t.Errorf("admins = %d, want 1", data.TotalAdmins)
	}
	if data.Licenses.TotalLicenses != 2 {
		t.Errorf("licenses = %d, want 2", data.Licenses.TotalLicenses)
	}
	if data.Licenses.PendingCount != 1 {
		t.Errorf("pending = %d, want 1", data.Licenses.PendingCount)
	}
}
