package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Wishlist is the set of products a user saved for later.
type Wishlist struct {
	UserID     uuid.UUID
	ProductIDs []uuid.UUID
	Products   []*Product
}
