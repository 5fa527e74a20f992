package services

import (
	"context"
	"errors"
	"testing"

	"loco-verify/internal/adapters/persistence/models"
	"loco-verify/internal/core/domain"
)

func newVendorFixture(t *testing.T) (*VendorService, *fakeUserRepo, *fakeLicenseRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	licenseRepo := newFakeLicenseRepo()
	return NewVendorService(userRepo, licenseRepo), userRepo, licenseRepo
}

func TestVendorGetByIDRejectsAdmins(t *testing.T) {
	svc, userRepo, _ := newVendorFixture(t)

	userRepo.users["a1"] = &models.User{ID: "a1", Role: string(domain.RoleAdmin)}

	if _, err := svc.GetByID(context.Background(), "a1"); !errors.Is(err, ErrVendorNotFound) {
		t.Fatalf("admin id: expected ErrVendorNotFound, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrVendorNotFound) {
		t.Fatalf("unknown id: expected ErrVendorNotFound, got %v", err)
	}
}

func TestVendorUpdateKeepsRoleAndEmail(t *testing.T) {
	svc, userRepo, _ := newVendorFixture(t)
	ctx := context.Background()

	userRepo.users["v1"] = &models.User{
		ID:    "v1",
		Name:  "Jane",
		Email: "jane@example.com",
		Role:  string(domain.RoleVendor),
	}

	name := "Jane Kumar"
	shop := "Jane's Tea Stall"
	vendor, err := svc.Update(ctx, "v1", &UpdateVendorInput{Name: &name, ShopName: &shop})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if vendor.Name != "Jane Kumar" {
		t.Errorf("name = %s, want Jane Kumar", vendor.Name)
	}
	if vendor.ShopName == nil || *vendor.ShopName != "Jane's Tea Stall" {
		t.Errorf("shop name = %v, want Jane's Tea Stall", vendor.ShopName)
	}
	if vendor.Email != "jane@example.com" {
		t.Errorf("email changed to %s; it is immutable here", vendor.Email)
	}
	if vendor.Role != string(domain.RoleVendor) {
		t.Errorf("role changed to %s; it is immutable here", vendor.Role)
	}
}

func TestVendorLicensesScopedToVendor(t *testing.T) {
	svc, userRepo, licenseRepo := newVendorFixture(t)
	ctx := context.Background()

	userRepo.users["v1"] = &models.User{ID: "v1", Role: string(domain.RoleVendor)}
	seedLicense(licenseRepo, "l1", "v1", string(domain.StatusPending), nil)
	seedLicense(licenseRepo, "l2", "other", string(domain.StatusPending), nil)

	licenses, err := svc.Licenses(ctx, "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(licenses) != 1 || licenses[0].ID != "l1" {
		t.Errorf("licenses = %v, want only l1", licenses)
	}
}
