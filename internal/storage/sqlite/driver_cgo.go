//go:build !purego

package sqlite

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3" // CGO SQLite driver
)

// openDB opens a SQLite database using the CGO driver
func openDB(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}
