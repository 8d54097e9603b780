package domain

import (
	"errors"
	"strings"
)

var (
	// ErrMissingRequiredField indicates a document or image export was
	// attempted before all required fields were filled.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrMalformedArchive indicates an archive whose recipe data is absent,
	// unparseable, or inconsistent with its image entry.
	ErrMalformedArchive = errors.New("malformed recipe archive")

	// ErrRendererUnavailable indicates a document or image renderer could
	// not be initialized.
	ErrRendererUnavailable = errors.New("renderer unavailable")

	// ErrExportFailed indicates encoding or rendering failed mid-export.
	ErrExportFailed = errors.New("export failed")

	// ErrNotFound indicates a draft lookup found nothing.
	ErrNotFound = errors.New("not found")
)

// MissingFieldsError lists every required field that is still empty, in form
// order. It unwraps to ErrMissingRequiredField.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "please fill in the following required fields:\n  - " + strings.Join(e.Fields, "\n  - ")
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingRequiredField
}
