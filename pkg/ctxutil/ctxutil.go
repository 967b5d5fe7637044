// Package ctxutil carries the authenticated caller and the request ID
// through a request context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type (
	userIDKey    struct{}
	userRoleKey  struct{}
	requestIDKey struct{}
)

// RoleStaff is the platform role allowed to call internal lifecycle hooks.
const RoleStaff = "staff"

// WithUserID stores the caller's user ID.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromCtx returns the caller's user ID. A missing value and uuid.Nil
// both mean an anonymous request.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, _ := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, id != uuid.Nil
}

// WithUserRole stores the platform role claim of the caller.
func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, userRoleKey{}, role)
}

// UserRoleFromCtx returns the platform role, or "" if there is none.
func UserRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey{}).(string)
	return role
}

// IsStaffCtx reports whether the caller carries the staff platform role.
func IsStaffCtx(ctx context.Context) bool {
	return UserRoleFromCtx(ctx) == RoleStaff
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
