package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products; categories may nest through ParentID.
type Category struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	ParentID    *uuid.UUID
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
