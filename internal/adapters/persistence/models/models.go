package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================
// Users
// ============================================================

// User represents users table (vendors and admins)
type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Phone     *string        `gorm:"size:20" json:"phone"`
	ShopName  *string        `gorm:"size:100" json:"shop_name"`
	Role      string         `gorm:"size:20;default:'VENDOR'" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Licenses []License `gorm:"foreignKey:VendorID" json:"licenses,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// UserResponse DTO
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	ShopName  *string   `json:"shop_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		ShopName:  u.ShopName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// ============================================================
// Licenses
// ============================================================

// License represents licenses table
type License struct {
	ID              string         `gorm:"primaryKey;size:36" json:"id"`
	VendorID        string         `gorm:"size:36;not null;index" json:"vendor_id"`
	LicenseType     string         `gorm:"size:100;not null" json:"license_type"`
	Status          string         `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	ApplicationDate time.Time      `gorm:"autoCreateTime" json:"application_date"`
	IssueDate       *time.Time     `json:"issue_date"`
	ExpiryDate      *time.Time     `gorm:"index" json:"expiry_date"`
	IDProofLink     *string        `gorm:"size:255" json:"id_proof_link"`
	ShopPhotoLink   *string        `gorm:"size:255" json:"shop_photo_link"`
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`
	ValidityPeriod  *int           `json:"validity_period"`
	RenewedAt       *time.Time     `json:"renewed_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Vendor *User `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}

func (License) TableName() string {
	return "licenses"
}

// BeforeCreate assigns a UUID primary key
func (l *License) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// VendorSummary is the vendor projection embedded in license responses
type VendorSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	ShopName *string `json:"shop_name"`
}

// LicenseResponse DTO
type LicenseResponse struct {
	ID              string         `json:"id"`
	VendorID        string         `json:"vendor_id"`
	LicenseType     string         `json:"license_type"`
	Status          string         `json:"status"`
	ApplicationDate time.Time      `json:"application_date"`
	IssueDate       *time.Time     `json:"issue_date"`
	ExpiryDate      *time.Time     `json:"expiry_date"`
	IDProofLink     *string        `json:"id_proof_link"`
	ShopPhotoLink   *string        `json:"shop_photo_link"`
	ValidityPeriod  *int           `json:"validity_period"`
	RenewedAt       *time.Time     `json:"renewed_at"`
	Vendor          *VendorSummary `json:"vendor,omitempty"`
}

func (l *License) ToResponse() *LicenseResponse {
	resp := &LicenseResponse{
		ID:              l.ID,
		VendorID:        l.VendorID,
		LicenseType:     l.LicenseType,
		Status:          l.Status,
		ApplicationDate: l.ApplicationDate,
		IssueDate:       l.IssueDate,
		ExpiryDate:      l.ExpiryDate,
		IDProofLink:     l.IDProofLink,
		ShopPhotoLink:   l.ShopPhotoLink,
		ValidityPeriod:  l.ValidityPeriod,
		RenewedAt:       l.RenewedAt,
	}

	if l.Vendor != nil {
		resp.Vendor = &VendorSummary{
			ID:       l.Vendor.ID,
			Name:     l.Vendor.Name,
			Email:    l.Vendor.Email,
			Phone:    l.Vendor.Phone,
			ShopName: l.Vendor.ShopName,
		}
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&License{},
	)
}
