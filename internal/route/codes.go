package route

import "strings"

// Code is a stable per-row failure tag. Codes are written into the output
// dataset and grouped for the run summary, so their text must not change.
type Code string

const (
	CodeFileNotFound      Code = "FILE_NOT_FOUND"
	CodeJSONReadError     Code = "JSON_READ_ERROR"
	CodeNoValidRouteKey   Code = "NO_VALID_ROUTE_KEY"
	CodeInvalidAfterSubst Code = "RUTA_INVALID_AFTER_REPLACEMENT"
)

// Codes lists every code in a fixed display order.
var Codes = []Code{
	CodeFileNotFound,
	CodeJSONReadError,
	CodeNoValidRouteKey,
	CodeInvalidAfterSubst,
}

const detailSep = ": "

// Error is a classified resolution failure.
type Error struct {
	Code   Code
	Detail string
}

// Error renders "CODE" or "CODE: detail".
func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Code)
	}
	return string(e.Code) + detailSep + e.Detail
}

// CodeOf extracts the tag from a rendered error cell. It returns false when
// cell does not start with a known code.
func CodeOf(cell string) (Code, bool) {
	tag, _, _ := strings.Cut(cell, ":")
	for _, c := range Codes {
		if tag == string(c) {
			return c, true
		}
	}
	return "", false
}
