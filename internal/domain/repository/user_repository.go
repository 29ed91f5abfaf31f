// Package repository defines the persistence contracts the use cases depend on.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail always reads from the primary so a just-registered email is seen.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns one page of users, newest first, and the total user count.
	List(ctx context.Context, offset, limit int) ([]*entity.User, int64, error)
	ListAll(ctx context.Context) ([]*entity.User, error)
	CountByRole(ctx context.Context, role entity.Role) (int64, error)

	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
