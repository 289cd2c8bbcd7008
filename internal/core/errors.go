package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
)

var NoRecordFound = xerrors.Message("No record found")

// NotFoundError reports a referenced entity that does not exist. It matches
// NoRecordFound under errors.Is.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Is(target error) bool {
	return target == NoRecordFound
}

func notFound(format string, args ...any) error {
	return xerrors.New(&NotFoundError{Message: fmt.Sprintf(format, args...)})
}

const pqUniqueViolation = "23505"

// IsUniqueViolation reports whether err comes from a unique or primary key
// constraint in either supported store.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
