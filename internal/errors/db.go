package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// Key (server_id, name)=(42, Catan) already exists.
	reDetailKey = regexp.MustCompile(`Key \(([^)]+)\)=`)
	// ... is still referenced from table "games".
	reStillReferenced = regexp.MustCompile(`still referenced from table "?([a-z_]+)"?`)
)

//nolint:gochecknoglobals // static read-only lookup
var tableNouns = map[string]string{
	"servers":           "server",
	"server_members":    "server membership",
	"timetable_entries": "timetable entry",
	"games":             "game",
}

// MapDBError classifies context, pgx and PostgreSQL errors as AppErrors that
// keep the original as their cause. Anything else is returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	wrap := func(code ErrorCode, message, field string) error {
		return &AppError{Code: code, Message: message, Field: field, Cause: err}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return wrap(ErrCodeTimeout, "database request timed out", "")
	case errors.Is(err, context.Canceled):
		return wrap(ErrCodeCanceled, "database request canceled", "")
	case errors.Is(err, pgx.ErrNoRows):
		return wrap(ErrCodeNotFound, "not found", "")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return wrap(ErrCodeConflict, "value already exists", violatedField(pgErr))
	case pgerrcode.ForeignKeyViolation:
		return wrap(ErrCodeForeignKey, foreignKeyMessage(pgErr), "")
	case pgerrcode.NotNullViolation:
		return wrap(ErrCodeValidation, "value is required", pgErr.ColumnName)
	case pgerrcode.CheckViolation:
		return wrap(ErrCodeValidation, "value is out of range", pgErr.ColumnName)
	default:
		return wrap(ErrCodeInternal, "database error", "")
	}
}

// violatedField names the column a unique violation is about. For a composite
// key that is the last column, e.g. name in (server_id, name).
func violatedField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	m := reDetailKey.FindStringSubmatch(pgErr.Detail)
	if m == nil {
		return ""
	}
	cols := strings.Split(m[1], ",")
	return strings.TrimSpace(cols[len(cols)-1])
}

func foreignKeyMessage(pgErr *pgconn.PgError) string {
	if m := reStillReferenced.FindStringSubmatch(pgErr.Detail); m != nil {
		return "still in use by a " + tableNoun(m[1])
	}
	return "referenced server does not exist"
}

func tableNoun(table string) string {
	if noun, ok := tableNouns[table]; ok {
		return noun
	}
	return strings.ReplaceAll(table, "_", " ")
}
