package domain

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrAreaNotFound       = errors.New("area not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrUnknownCatalog     = errors.New("unknown catalog")
	ErrFileTooLarge       = errors.New("file exceeds maximum upload size")
	ErrConflict           = errors.New("record was modified concurrently")
)
