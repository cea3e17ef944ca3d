package repository

import (
	"errors"

	"gorm.io/gorm"
)

// translateNotFound converts gorm's record-not-found into the entity's
// domain sentinel so the service layer never sees gorm errors.
func translateNotFound(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// isUniqueViolation reports whether err is a uniqueness-constraint
// violation. Relies on gorm's error translation (TranslateError enabled at
// connection time).
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
