package utils

import (
	"context"

	"bookstore-be/internal/auth"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "role"
)

// SetUserContext sets user info into context (called by middleware)
func SetUserContext(ctx context.Context, id string, role auth.Role) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	return ctx
}

// GetUserIDFromContext retrieves userID safely
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}

func GetUserRoleFromContext(ctx context.Context) auth.Role {
	role, _ := ctx.Value(UserRoleKey).(auth.Role)
	return role
}

// IdentityFromContext rebuilds the caller identity set by the access gate.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := GetUserIDFromContext(ctx)
	if !ok {
		return auth.Identity{}, false
	}
	return auth.Identity{ID: id, Role: GetUserRoleFromContext(ctx)}, true
}
