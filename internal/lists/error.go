package lists

import (
	"fmt"

	"bookstore-be/internal/apperror"
)

var (
	ErrUserNotFound = apperror.NotFound("User not found.")
	ErrInvalidID    = apperror.Validation("Invalid id.")
	ErrUnknownList  = apperror.Validation("Unknown list.")

	ErrTooManyConflicts = fmt.Errorf("%w: list update kept conflicting", apperror.ErrInternal)
)
