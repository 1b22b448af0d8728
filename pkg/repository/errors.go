package repository

import (
	"database/sql"
	"errors"

	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// MapError translates database errors to domain errors.
// It maps sql.ErrNoRows to notFoundErr and SQLite unique constraint
// violations to duplicateErr. All other errors pass through unchanged.
func MapError(err, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var se *sqlite3.Error
	if errors.As(err, &se) {
		code := se.Code()
		if code == sqlite3lib.SQLITE_CONSTRAINT ||
			code == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY {
			return duplicateErr
		}
	}

	return err
}
