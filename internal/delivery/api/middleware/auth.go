package middleware

import (
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware guards routes with the access token issued at login.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// RequireAuth rejects requests without a valid bearer token and records the
// caller's identity for the handlers.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, found := strings.CutPrefix(header, bearerPrefix)
		if !found || strings.TrimSpace(token) == "" {
			return domainerrors.ErrUnauthenticated
		}

		claims, err := m.tokenSvc.ParseAccessToken(strings.TrimSpace(token))
		if err != nil {
			return domainerrors.ErrUnauthenticated
		}

		deliverycontext.SetIdentity(c, claims.UserID, claims.Role)

		return next(c)
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, ok := deliverycontext.GetUserRole(c)
		if !ok {
			return domainerrors.ErrUnauthenticated
		}
		if !role.IsAdmin() {
			return domainerrors.ErrAdminRequired
		}

		return next(c)
	}
}
