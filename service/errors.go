package service

import (
	"errors"
	"strings"
)

var (
	ErrProfileExists      = errors.New("profile already exists for this user")
	ErrProfileNotFound    = errors.New("entrepreneur profile not found")
	ErrEmptyUpdate        = errors.New("no fields to update")
	ErrLockedFields       = errors.New("locked fields cannot be modified")
	ErrInvalidStatus      = errors.New("invalid status, must be one of: draft, published, deactivated")
	ErrForbidden          = errors.New("you are not allowed to modify this resource")
	ErrInvalidFilter      = errors.New("invalid listing parameters")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrUnsupportedFile    = errors.New("Invalid file type. Allowed: image/jpeg, image/png, image/webp, image/svg+xml")
	ErrFileTooLarge       = errors.New("File size exceeds 5 MB limit")
	ErrServiceNotReady    = errors.New("service dependencies not set")
)

// LockedFieldsError names the locked fields a patch tried to change
type LockedFieldsError struct {
	Fields []string
}

func (e *LockedFieldsError) Error() string {
	return "Cannot modify locked fields: " + strings.Join(e.Fields, ", ")
}

func (e *LockedFieldsError) Unwrap() error {
	return ErrLockedFields
}
