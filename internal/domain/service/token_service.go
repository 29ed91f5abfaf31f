package service

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// AccessClaims is the identity carried by a verified access token.
type AccessClaims struct {
	UserID    uuid.UUID
	Role      entity.Role
	ExpiresAt time.Time
}

// TokenService issues and verifies the bearer tokens that stand in for a session.
type TokenService interface {
	IssueAccessToken(userID uuid.UUID, role entity.Role) (token string, expiresAt time.Time, err error)
	ParseAccessToken(token string) (*AccessClaims, error)
}
