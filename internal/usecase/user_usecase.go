// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a shopper account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  entity.Address
}

type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput carries the fields a user may change on their own
// account. Nil fields are left untouched.
type UpdateProfileInput struct {
	Name         *string
	Phone        *string
	ProfileImage *string
	Address      *entity.Address
	Password     *string
}

// --- Output DTOs ---

type LoginOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *entity.User
}

// Pagination describes one page of a paged listing.
type Pagination struct {
	Page  int
	Limit int
	Total int64
	Pages int
}

type UserPage struct {
	Users      []*entity.User
	Pagination Pagination
}

// UserDetail is the admin view of one account.
type UserDetail struct {
	User     *entity.User
	Wishlist []*entity.Product
	Cart     *entity.Cart
}

// UserUsecase covers registration, sign-in, self-service profile and admin user management.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*entity.User, error)

	ListUsers(ctx context.Context, page, limit int) (*UserPage, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*UserDetail, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}
