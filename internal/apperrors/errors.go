package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrSchema indicates that the backing store's header is missing an expected field name.
var ErrSchema = errors.New("schema error")

// ErrStoreUnavailable indicates that the backing store could not be reached or opened.
var ErrStoreUnavailable = errors.New("record store unavailable")

// ErrStoreWrite indicates that a write to the backing store failed.
var ErrStoreWrite = errors.New("record store write failed")

// ErrStoreLocked indicates that the backing file is held open by another process.
// It wraps ErrStoreWrite so callers that only care about write failures still match it.
var ErrStoreLocked = fmt.Errorf("%w: store is locked", ErrStoreWrite)

// ErrParse indicates that a loosely typed cell could not be parsed.
var ErrParse = errors.New("parse error")

// ParseWarning reports a cell that could not be parsed. It is non-fatal: the
// normalizer substitutes a safe default and processing continues.
type ParseWarning struct {
	Field string
	Raw   string
	Err   error
}

func (w *ParseWarning) Error() string {
	if w.Field == "" {
		return fmt.Sprintf("could not parse %q: %v", w.Raw, w.Err)
	}
	return fmt.Sprintf("could not parse %s %q: %v", w.Field, w.Raw, w.Err)
}

// Unwrap lets errors.Is match both ErrParse and the underlying cause.
func (w *ParseWarning) Unwrap() []error {
	return []error{ErrParse, w.Err}
}
