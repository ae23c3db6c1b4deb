package book

import "bookstore-be/internal/apperror"

var (
	ErrBookNotFound   = apperror.NotFound("Book not found.")
	ErrNoBooks        = apperror.NotFound("No books found.")
	ErrAdminRequired  = apperror.Forbidden("You do not have admin access.")
	ErrMissingFields  = apperror.Validation("url, title, author, desc and language are required.")
	ErrInvalidPrice   = apperror.Validation("Price must not be negative.")
	ErrNoUpdateFields = apperror.Validation("No fields to update.")
)
