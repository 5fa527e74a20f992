package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidRole       = errors.New("invalid role")
)

// License errors
var (
	ErrLicenseNotFound      = errors.New("license not found")
	ErrInvalidLicenseStatus = errors.New("invalid license status")
	ErrIllegalTransition    = errors.New("status change not permitted from current state")
)

// Upload errors
var (
	ErrUploadInvalid  = errors.New("missing upload fields")
	ErrUploadTooLarge = errors.New("file exceeds the size limit")
	ErrUploadFailed   = errors.New("file storage failed")
)
