package domain

import (
	"fmt"
	"strings"
)

// Default key names of a Discord data package user.json.
const (
	DefaultContainerKey = "favoriteGifs"
	DefaultListKey      = "gifs"
)

// KeyPath names the two keys searched in turn: Container from the document
// root, then List inside the container.
type KeyPath struct {
	Container string `json:"container" yaml:"container"`
	List      string `json:"list" yaml:"list"`
}

// DefaultKeyPath returns favoriteGifs -> gifs.
func DefaultKeyPath() KeyPath {
	return KeyPath{Container: DefaultContainerKey, List: DefaultListKey}
}

// Normalise trims surrounding whitespace from both keys.
func (p KeyPath) Normalise() KeyPath {
	return KeyPath{
		Container: strings.TrimSpace(p.Container),
		List:      strings.TrimSpace(p.List),
	}
}

// Validate returns ErrInvalidInput if either key is blank.
func (p KeyPath) Validate() error {
	n := p.Normalise()
	if n.Container == "" {
		return fmt.Errorf("%w: container key is empty", ErrInvalidInput)
	}
	if n.List == "" {
		return fmt.Errorf("%w: list key is empty", ErrInvalidInput)
	}
	return nil
}

// String renders the path as "container.list".
func (p KeyPath) String() string {
	return p.Container + "." + p.List
}

// ProjectionPolicy decides what happens to list entries without a string src.
type ProjectionPolicy string

// Available projection policies.
const (
	// PolicySkip omits malformed entries and reports them as issues.
	PolicySkip ProjectionPolicy = "skip"

	// PolicyStrict fails the whole projection on the first malformed entry.
	PolicyStrict ProjectionPolicy = "strict"

	// PolicyKeep keeps malformed entries with an empty link and reports them.
	PolicyKeep ProjectionPolicy = "keep"
)

// IsValid returns true if the policy is recognised.
func (p ProjectionPolicy) IsValid() bool {
	switch p {
	case PolicySkip, PolicyStrict, PolicyKeep:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p ProjectionPolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p ProjectionPolicy) Description() string {
	switch p {
	case PolicySkip:
		return "Skip entries without a src link"
	case PolicyStrict:
		return "Fail when any entry has no src link"
	case PolicyKeep:
		return "Keep entries without a src link and flag them"
	default:
		return "Unknown"
	}
}
