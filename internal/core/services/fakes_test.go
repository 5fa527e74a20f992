package services

import (
	"context"
	"strings"
	"time"

	"loco-verify/internal/adapters/persistence/models"
	"loco-verify/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory UserRepository for service tests
type fakeUserRepo struct {
	users map[string]*models.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		f.seq++
		user.ID = "user-" + string(rune('a'+f.seq))
	}
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByIDWithLicenses(ctx context.Context, id string, recentLicenses int) (*models.User, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role string, offset, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// fakeLicenseRepo is an in-memory LicenseRepository for service tests
type fakeLicenseRepo struct {
	licenses map[string]*models.License
	seq      int

	// captured BulkUpdateStatus arguments
	bulkFromStatus string
	bulkUpdates    map[string]interface{}
}

func newFakeLicenseRepo() *fakeLicenseRepo {
	return &fakeLicenseRepo{licenses: make(map[string]*models.License)}
}

func (f *fakeLicenseRepo) Create(ctx context.Context, license *models.License) error {
	if license.ID == "" {
		f.seq++
		license.ID = "lic-" + string(rune('a'+f.seq))
	}
	license.ApplicationDate = time.Now()
	f.licenses[license.ID] = license
	return nil
}

func (f *fakeLicenseRepo) GetByID(ctx context.Context, id string) (*models.License, error) {
	l, ok := f.licenses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (f *fakeLicenseRepo) Update(ctx context.Context, license *models.License) error {
	if _, ok := f.licenses[license.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.licenses[license.ID] = license
	return nil
}

func (f *fakeLicenseRepo) Delete(ctx context.Context, id string) error {
	delete(f.licenses, id)
	return nil
}

func (f *fakeLicenseRepo) List(ctx context.Context, filter *repositories.LicenseFilter, offset, limit int) ([]*models.License, int64, error) {
	var out []*models.License
	for _, l := range f.licenses {
		if filter != nil {
			if filter.Status != "" && l.Status != filter.Status {
				continue
			}
			if filter.Type != "" && l.LicenseType != filter.Type {
				continue
			}
			if filter.VendorID != "" && l.VendorID != filter.VendorID {
				continue
			}
		}
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLicenseRepo) ListByVendor(ctx context.Context, vendorID string) ([]*models.License, error) {
	var out []*models.License
	for _, l := range f.licenses {
		if l.VendorID == vendorID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLicenseRepo) BulkUpdateStatus(ctx context.Context, ids []string, fromStatus string, updates map[string]interface{}) (int64, error) {
	f.bulkFromStatus = fromStatus
	f.bulkUpdates = updates

	var updated int64
	for _, id := range ids {
		l, ok := f.licenses[id]
		if !ok || l.Status != fromStatus {
			continue
		}
		if status, ok := updates["status"].(string); ok {
			l.Status = status
		}
		if issue, ok := updates["issue_date"].(time.Time); ok {
			l.IssueDate = &issue
		}
		if expiry, ok := updates["expiry_date"].(time.Time); ok {
			l.ExpiryDate = &expiry
		}
		updated++
	}
	return updated, nil
}

func (f *fakeLicenseRepo) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for _, l := range f.licenses {
		if l.Status == "APPROVED" && l.ExpiryDate != nil && l.ExpiryDate.Before(now) {
			l.Status = "EXPIRED"
			n++
		}
	}
	return n, nil
}

func (f *fakeLicenseRepo) CountByStatus(ctx context.Context) ([]repositories.StatusCount, error) {
	counts := make(map[string]int64)
	for _, l := range f.licenses {
		counts[l.Status]++
	}
	var out []repositories.StatusCount
	for status, n := range counts {
		out = append(out, repositories.StatusCount{Status: status, Count: n})
	}
	return out, nil
}

func (f *fakeLicenseRepo) CountByType(ctx context.Context) ([]repositories.TypeCount, error) {
	counts := make(map[string]int64)
	for _, l := range f.licenses {
		counts[l.LicenseType]++
	}
	var out []repositories.TypeCount
	for t, n := range counts {
		out = append(out, repositories.TypeCount{LicenseType: t, Count: n})
	}
	return out, nil
}

func (f *fakeLicenseRepo) CountPending(ctx context.Context) (int64, error) {
	var n int64
	for _, l := range f.licenses {
		if l.Status == "PENDING" {
			n++
		}
	}
	return n, nil
}

func (f *fakeLicenseRepo) CountExpiringSoon(ctx context.Context, within time.Duration) (int64, error) {
	cutoff := time.Now().Add(within)
	var n int64
	for _, l := range f.licenses {
		if l.Status == "APPROVED" && l.ExpiryDate != nil && l.ExpiryDate.Before(cutoff) {
			n++
		}
	}
	return n, nil
}
