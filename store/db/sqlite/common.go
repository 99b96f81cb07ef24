package sqlite

import (
	"strings"

	"github.com/pkg/errors"
	sqlitelib "modernc.org/sqlite"

	pberrors "github.com/Jessyabc/publicbusiness/internal/errors"
)

// placeholder returns a placeholder for SQLite (uses ?)
func placeholder(n int) string {
	return "?"
}

// placeholders returns n placeholders for SQLite
func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
}

const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// mapConstraintError converts SQLite unique-constraint rejections into
// ALREADY_EXISTS so the store layer can resolve write races.
func mapConstraintError(err error) error {
	var se *sqlitelib.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
			return pberrors.Wrap(err, pberrors.ErrCodeAlreadyExists, "row already exists")
		}
	}
	return err
}
