package order

import (
	"fmt"
	"strings"

	"bookstore-be/internal/apperror"
)

var (
	ErrOrderNotFound  = apperror.NotFound("Order not found.")
	ErrNoOrders       = apperror.NotFound("No orders found for this user.")
	ErrAdminOnly      = apperror.Forbidden("Access denied. Admins only.")
	ErrEmptyOrder     = apperror.Validation("Invalid request data.")
	ErrInvalidBookID  = apperror.Validation("Invalid book id.")
	ErrStatusRequired = apperror.Validation("Status is required.")
	ErrInvalidStatus  = apperror.Validation(fmt.Sprintf(
		"Invalid status. Valid statuses are: %s", joinStatuses(Statuses),
	))
)

func joinStatuses(ss []Status) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
