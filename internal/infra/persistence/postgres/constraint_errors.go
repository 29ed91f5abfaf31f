package postgres

import (
	"strings"

	"storefront/internal/errors"

	"gorm.io/gorm"
)

// The driver-specific substrings cover connections opened without
// TranslateError (sqlite in tests, or a pre-configured *gorm.DB).

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "sqlstate 23505")
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "sqlstate 23503")
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "check constraint") ||
		strings.Contains(msg, "sqlstate 23514")
}
