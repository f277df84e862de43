package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrParse indicates the input text is not valid JSON.
	ErrParse = errors.New("invalid JSON")

	// ErrNotFound indicates a key is absent or does not hold an object or array.
	ErrNotFound = errors.New("not found")

	// ErrNoDocument indicates a search was requested before any file was loaded.
	ErrNoDocument = errors.New("no document loaded")

	// ErrMalformedEntry indicates a list entry has no usable src link.
	ErrMalformedEntry = errors.New("malformed entry")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedPlatform indicates links cannot be opened on this OS.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// ParseError describes why an uploaded file could not be parsed.
type ParseError struct {
	// Name is the display name of the input.
	Name string

	// Offset is the byte offset of the problem, or -1 when unknown.
	Offset int64

	// Err is the underlying decoder error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: invalid JSON at offset %d: %v", e.Name, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: invalid JSON: %v", e.Name, e.Err)
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrParse) hold for every ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// NotFoundError reports that a key of the key path could not be resolved.
type NotFoundError struct {
	// Key is the key that was searched for.
	Key string

	// Reason is an optional detail such as "wrong shape".
	Reason string
}

func (e *NotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("key %q not found: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("key %q not found", e.Key)
}

// Is makes errors.Is(err, ErrNotFound) hold for every NotFoundError.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// MalformedEntryError reports a list entry rejected by the strict policy.
type MalformedEntryError struct {
	ID     string
	Reason string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("entry %q: %s", e.ID, e.Reason)
}

// Is makes errors.Is(err, ErrMalformedEntry) hold for every MalformedEntryError.
func (e *MalformedEntryError) Is(target error) bool { return target == ErrMalformedEntry }

// UserMessage renders err the way it is shown in a banner.
// Unknown errors fall back to their own text.
func UserMessage(err error) string {
	var nf *NotFoundError
	var me *MalformedEntryError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoDocument):
		return "Please upload a JSON file first!"
	case errors.Is(err, ErrParse):
		return "Invalid JSON file!"
	case errors.As(err, &nf):
		return fmt.Sprintf("Key %q not found or does not contain a list/array in the JSON file.", nf.Key)
	case errors.As(err, &me):
		return fmt.Sprintf("GIF %q has no usable src link (%s).", me.ID, me.Reason)
	default:
		return err.Error()
	}
}
