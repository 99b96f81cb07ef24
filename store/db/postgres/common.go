package postgres

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	pberrors "github.com/Jessyabc/publicbusiness/internal/errors"
)

// placeholder returns a numbered placeholder for PostgreSQL (uses $1, $2, ...)
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// placeholders returns n numbered placeholders for PostgreSQL
func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
}

const pqUniqueViolation = "23505"

// mapConstraintError converts unique-constraint rejections into
// ALREADY_EXISTS so the store layer can resolve write races.
func mapConstraintError(err error) error {
	var pe *pq.Error
	if errors.As(err, &pe) && string(pe.Code) == pqUniqueViolation {
		return pberrors.Wrap(err, pberrors.ErrCodeAlreadyExists, "row already exists")
	}
	return err
}
