package utils

import (
	"context"
	"database/sql"
	"errors"

	set "github.com/deckarep/golang-set/v2"
	"github.com/lib/pq"
)

const uniqueViolation pq.ErrorCode = "23505"

// schemaErrorCodes are the failures the tables can raise on their own: duplicate user names and
// primary keys, rows pointing at a missing user, missing required columns, and statements cut
// short by a canceled request.
var schemaErrorCodes = set.NewSet[pq.ErrorCode](
	uniqueViolation,
	"23503", // foreign_key_violation
	"23502", // not_null_violation
	"57014", // query_canceled
)

// GetDBErrorType categorizes database errors into the labels of the query error metric.
func GetDBErrorType(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "no_rows"
	case errors.Is(err, sql.ErrConnDone):
		return "connection_closed"
	case errors.Is(err, sql.ErrTxDone):
		return "transaction_done"
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case schemaErrorCodes.Contains(pqErr.Code):
			return pqErr.Code.Name()
		case pqErr.Code.Class() == "08":
			return "connection_error"
		default:
			return "postgres_error"
		}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return "context_canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "context_deadline_exceeded"
	}
	return "unknown"
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
