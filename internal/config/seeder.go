package config

import (
	"log"

	"loco-verify/internal/adapters/persistence/models"
	"loco-verify/internal/core/domain"
	"loco-verify/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run(devMode bool) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if devMode {
		if err := s.seedDemoVendor(); err != nil {
			log.Printf("⚠️ Demo vendor seeder skipped: %v", err)
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	// Check if admin already exists
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Railway Licensing Officer",
		Email:    "admin@locoverify.local",
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedDemoVendor seeds a demo vendor with sample license applications
func (s *Seeder) seedDemoVendor() error {
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", "vendor@locoverify.local").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("vendor123456")
	if err != nil {
		return err
	}

	phone := "9876543210"
	shopName := "Jane's Tea Stall"
	vendor := &models.User{
		Name:     "Jane",
		Email:    "vendor@locoverify.local",
		Password: hashedPassword,
		Phone:    &phone,
		ShopName: &shopName,
		Role:     string(domain.RoleVendor),
	}

	if err := s.db.Create(vendor).Error; err != nil {
		return err
	}

	licenses := []models.License{
		{VendorID: vendor.ID, LicenseType: "Health Clearance", Status: string(domain.StatusApproved)},
		{VendorID: vendor.ID, LicenseType: "Fire Safety Clearance", Status: string(domain.StatusPending)},
		{VendorID: vendor.ID, LicenseType: "Hygiene Certificate", Status: string(domain.StatusRejected)},
	}

	for i := range licenses {
		if err := s.db.Create(&licenses[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Demo vendor created: %s (%d sample licenses)", vendor.Email, len(licenses))
	return nil
}
