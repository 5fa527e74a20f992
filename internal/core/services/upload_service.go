package services

import (
	"context"
	"fmt"
	"io"

	"loco-verify/internal/adapters/persistence/repositories"
	"loco-verify/internal/adapters/storage"
	"loco-verify/internal/core/domain"
)

// Upload field names
const (
	FieldIDProof   = "idProof"
	FieldShopPhoto = "shopPhoto"
)

// UploadService attaches stored documents to license records
type UploadService struct {
	licenseRepo repositories.LicenseRepository
	store       storage.Storage
}

// NewUploadService creates a new upload service
func NewUploadService(licenseRepo repositories.LicenseRepository, store storage.Storage) *UploadService {
	return &UploadService{
		licenseRepo: licenseRepo,
		store:       store,
	}
}

// SaveFile stores a file and returns its public URL without touching
// any license record (used by the vendor apply flow before the license
// exists)
func (s *UploadService) SaveFile(ctx context.Context, fileName string, r io.Reader) (string, error) {
	if fileName == "" {
		return "", domain.ErrUploadInvalid
	}

	url, err := s.store.Save(ctx, fileName, r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	return url, nil
}

// AttachDocument stores a file and writes its URL onto the license's
// matching field. A failure after storage but before the database write
// leaves an orphaned file; that inconsistency is accepted.
func (s *UploadService) AttachDocument(ctx context.Context, licenseID, field, fileName string, r io.Reader) (string, error) {
	if licenseID == "" || field == "" || fileName == "" {
		return "", domain.ErrUploadInvalid
	}

	license, err := s.licenseRepo.GetByID(ctx, licenseID)
	if err != nil {
		return "", ErrLicenseNotFound
	}

	url, err := s.store.Save(ctx, fileName, r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	switch field {
	case FieldIDProof:
		license.IDProofLink = &url
	case FieldShopPhoto:
		license.ShopPhotoLink = &url
	default:
		license.Notes = url
	}

	if err := s.licenseRepo.Update(ctx, license); err != nil {
		return "", err
	}

	return url, nil
}
