package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsUniqueViolation reports whether the error is a sqlite unique constraint
// failure. When columnName is provided, the helper looks for that column in
// the constraint text.
func IsUniqueViolation(err error, columnName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	if columnName == "" {
		return true
	}
	return strings.Contains(msg, columnName)
}

// IsForeignKeyViolation reports whether the error is a sqlite foreign key
// constraint failure, e.g. creating a room against a missing property.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// IsNotFound reports whether the error is GORM's missing-record sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
