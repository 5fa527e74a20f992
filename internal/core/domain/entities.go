package domain

// Role represents user role in the system
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleVendor Role = "VENDOR"
)

// ValidRole reports whether the given label is a member of the closed role set.
// Legacy "OFFICIAL" labels from older clients are treated as ADMIN.
func ValidRole(role string) bool {
	return role == string(RoleAdmin) || role == string(RoleVendor)
}

// CanonicalRole maps legacy role labels onto the closed {ADMIN, VENDOR} set.
func CanonicalRole(role string) string {
	switch role {
	case "OFFICIAL", "Official", "official":
		return string(RoleAdmin)
	default:
		return role
	}
}

// LicenseStatus represents the lifecycle state of a license
type LicenseStatus string

const (
	StatusPending        LicenseStatus = "PENDING"
	StatusApproved       LicenseStatus = "APPROVED"
	StatusRejected       LicenseStatus = "REJECTED"
	StatusExpired        LicenseStatus = "EXPIRED"
	StatusPendingRenewal LicenseStatus = "PENDING_RENEWAL"
)

// ValidStatus reports whether the given value is a known license status.
func ValidStatus(status string) bool {
	switch LicenseStatus(status) {
	case StatusPending, StatusApproved, StatusRejected, StatusExpired, StatusPendingRenewal:
		return true
	}
	return false
}

// Bulk review actions
const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
)

// Validity windows
const (
	// ApprovalValidityDays is the validity window stamped on approval.
	ApprovalValidityDays = 180

	// DefaultRenewalMonths is the renewal period used when a license
	// carries no stored validity period.
	DefaultRenewalMonths = 12

	// RenewalWindowDays is how many days before expiry a renewal opens.
	RenewalWindowDays = 30
)
