package user

import "bookstore-be/internal/apperror"

var (
	ErrUsernameTooShort   = apperror.Validation("Username must be at least 4 characters long.")
	ErrPasswordTooShort   = apperror.Validation("Password must be at least 5 characters long.")
	ErrEmailRequired      = apperror.Validation("Email is required.")
	ErrAddressRequired    = apperror.Validation("Address is required.")
	ErrCredentialsMissing = apperror.Validation("Email and password are required.")
	ErrEmailExists        = apperror.Validation("Email is already registered.")
	ErrInvalidCredentials = apperror.Validation("Invalid email or password.")
	ErrUserNotFound       = apperror.NotFound("User not found.")
)
