package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlstates maps the postgres error codes the desk can hit to our codes;
// anything else is ErrorCodeDB
var sqlstates = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"22007": ErrorCodeInvalidArgument, // invalid_datetime_format
	"40001": ErrorCodeDB,              // serialization_failure
	"40P01": ErrorCodeDB,              // deadlock_detected
	"55P03": ErrorCodeUnavailable,     // lock_not_available
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
}

// PgError returns the postgres error at the root of err
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateKey reports a unique violation anywhere in err's chain
func IsDuplicateKey(err error) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == "23505"
}

// FromPostgres codes a repo error by SQLSTATE and names the offending column
// when postgres reports one. Non postgres errors become ErrorCodeDB; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	pgErr, ok := PgError(err)
	if !ok {
		return Wrap(err, ErrorCodeDB, msg)
	}
	code, known := sqlstates[pgErr.Code]
	if !known {
		code = ErrorCodeDB
	}
	out := Wrap(err, code, msg)
	if f := pgField(pgErr); f != "" {
		out = WithField(out, f)
	}
	return out
}

// pgField prefers the reported column, else derives it from a
// <table>_<column>_key style constraint name
func pgField(e *pgconn.PgError) string {
	if c := strings.TrimSpace(e.ColumnName); c != "" {
		return c
	}
	name := e.ConstraintName
	if name == "" {
		return ""
	}
	name = strings.TrimPrefix(name, e.TableName+"_")
	for _, suf := range []string{"_key", "_fkey", "_check"} {
		if strings.HasSuffix(name, suf) {
			return strings.TrimSuffix(name, suf)
		}
	}
	return ""
}
