package application

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")

	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProductID = errors.New("invalid product id format")
	ErrEmptyPatch       = errors.New("product details cannot be empty")
	ErrSearchDisabled   = errors.New("product search is not configured")
	ErrUploadDisabled   = errors.New("image storage is not configured")
)
