// Package errors turns errors into low-cardinality labels for metrics and logs.
package errors

import (
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/target/serverboard/internal/errors"
)

// Classify returns a normalized label for err. Application errors report their code
// (not_found, forbidden, ...); anything else reports the innermost concrete type in
// snake_case-ish form.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}

	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}
	name := strings.ReplaceAll(strings.ToLower(t.String()), ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
