package domain

import "time"

// Document is a parsed export file held in memory.
// A Document is replaced wholesale by the next successful load and is
// never written anywhere.
type Document struct {
	// ID is unique per load. Two loads of the same file get different IDs.
	ID string

	// Name is the display name of the source, usually the file base name.
	Name string

	// Path is the file path the document was read from, if any.
	Path string

	// Size is the number of bytes read.
	Size int64

	// LoadedAt is when parsing finished.
	LoadedAt time.Time

	// Root is the top-level JSON value.
	Root Value
}
