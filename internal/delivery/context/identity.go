package context

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// KeyUserID is the key for the authenticated user's ID.
	KeyUserID ContextKey = "user_id"

	// KeyUserRole is the key for the authenticated user's role.
	KeyUserRole ContextKey = "user_role"
)

// SetIdentity records the authenticated caller on both the echo and the request context.
func SetIdentity(c echo.Context, userID uuid.UUID, role entity.Role) {
	c.Set(string(KeyUserID), userID)
	c.Set(string(KeyUserRole), role)

	ctx := context.WithValue(c.Request().Context(), KeyUserID, userID)
	ctx = context.WithValue(ctx, KeyUserRole, role)
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetUserID returns the authenticated user's ID, if any.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(string(KeyUserID)).(uuid.UUID)

	return id, ok && id != uuid.Nil
}

// GetUserRole returns the authenticated user's role, if any.
func GetUserRole(c echo.Context) (entity.Role, bool) {
	role, ok := c.Get(string(KeyUserRole)).(entity.Role)

	return role, ok
}

// GetUserIDFromContext extracts the authenticated user's ID from a standard context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(KeyUserID).(uuid.UUID)

	return id, ok
}
