package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	mockSvc "storefront/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func ok(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	userID := uuid.New()
	tokens := mockSvc.NewMockTokenService(t)
	tokens.EXPECT().ParseAccessToken("good").Return(&service.AccessClaims{UserID: userID, Role: entity.RoleUser}, nil)
	tokens.EXPECT().ParseAccessToken("expired").Return(nil, errors.New("token is expired"))
	m := NewAuthMiddleware(tokens)

	c, _ := newContext("Bearer good")
	require.NoError(t, m.RequireAuth(ok)(c))
	got, found := deliverycontext.GetUserID(c)
	assert.True(t, found)
	assert.Equal(t, userID, got)
	fromCtx, found := deliverycontext.GetUserIDFromContext(c.Request().Context())
	assert.True(t, found)
	assert.Equal(t, userID, fromCtx)

	for _, header := range []string{"", "Basic abc", "Bearer ", "Bearer expired"} {
		c, _ := newContext(header)
		assert.ErrorIs(t, m.RequireAuth(ok)(c), domainerrors.ErrUnauthenticated, header)
	}
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	m := NewAuthMiddleware(mockSvc.NewMockTokenService(t))

	c, _ := newContext("")
	assert.ErrorIs(t, m.RequireAdmin(ok)(c), domainerrors.ErrUnauthenticated)

	deliverycontext.SetIdentity(c, uuid.New(), entity.RoleUser)
	assert.ErrorIs(t, m.RequireAdmin(ok)(c), domainerrors.ErrAdminRequired)

	deliverycontext.SetIdentity(c, uuid.New(), entity.RoleAdmin)
	assert.NoError(t, m.RequireAdmin(ok)(c))
}

type stubLimiter struct {
	result *service.RateLimitResult
	err    error
	keys   []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (*service.RateLimitResult, error) {
	s.keys = append(s.keys, key)

	return s.result, s.err
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reset := time.Unix(1767225600, 0)

	t.Run("allowed sets headers", func(t *testing.T) {
		limiter := &stubLimiter{result: &service.RateLimitResult{Allowed: true, Limit: 5, Remaining: 4, ResetAt: reset}}
		c, rec := newContext("")

		require.NoError(t, NewRateLimitMiddleware(limiter, logger).Limit("login")(ok)(c))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "5", rec.Header().Get(HeaderRateLimitLimit))
		assert.Equal(t, "4", rec.Header().Get(HeaderRateLimitRemaining))
		assert.Equal(t, "1767225600", rec.Header().Get(HeaderRateLimitReset))
		require.Len(t, limiter.keys, 1)
		assert.Contains(t, limiter.keys[0], "login:")
	})

	t.Run("denied", func(t *testing.T) {
		limiter := &stubLimiter{result: &service.RateLimitResult{Limit: 5, RetryAfter: 1500 * time.Millisecond, ResetAt: reset}}
		c, rec := newContext("")

		err := NewRateLimitMiddleware(limiter, logger).Limit("login")(ok)(c)

		assert.ErrorIs(t, err, domainerrors.ErrRateLimited)
		assert.Equal(t, "2", rec.Header().Get(echo.HeaderRetryAfter))
	})

	t.Run("limiter failure lets the request through", func(t *testing.T) {
		limiter := &stubLimiter{err: errors.New("redis: connection refused")}
		c, rec := newContext("")

		require.NoError(t, NewRateLimitMiddleware(limiter, logger).Limit("register")(ok)(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "app error", err: errors.WithStack(domainerrors.ErrOrderNotFound), status: http.StatusNotFound, body: "ORDER_NOT_FOUND"},
		{name: "echo error", err: echo.ErrMethodNotAllowed, status: http.StatusMethodNotAllowed, body: "HTTP_ERROR"},
		{name: "unknown error", err: errors.New("boom"), status: http.StatusInternalServerError, body: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext("")

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
			assert.NotContains(t, rec.Body.String(), "boom")
		})
	}
}
