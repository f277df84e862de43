package domain

import "fmt"

// SearchSettings configures how the GIF list is located.
type SearchSettings struct {
	// Path is the container -> list key path.
	Path KeyPath

	// Policy decides what happens to entries without a src link.
	Policy ProjectionPolicy
}

// OpenSettings configures bulk opening of links.
type OpenSettings struct {
	// Target selects the field to open.
	Target OpenTarget

	// Rate is launches per second. Zero disables pacing.
	Rate float64

	// Burst is how many launches may happen back to back.
	Burst int
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Search SearchSettings
	Open   OpenSettings
}

// DefaultAppSettings returns sensible defaults.
// The key path matches a Discord data package and links are opened
// a few per second so the browser keeps up.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			Path:   DefaultKeyPath(),
			Policy: PolicySkip,
		},
		Open: OpenSettings{
			Target: OpenTargetSrc,
			Rate:   4,
			Burst:  1,
		},
	}
}

// OpenOptions converts the open settings to dispatcher options.
func (s AppSettings) OpenOptions() OpenOptions {
	return OpenOptions{
		Target: s.Open.Target,
		Rate:   s.Open.Rate,
		Burst:  s.Open.Burst,
	}
}

// Validate checks that every setting holds a usable value.
func (s AppSettings) Validate() error {
	if err := s.Search.Path.Validate(); err != nil {
		return err
	}
	if !s.Search.Policy.IsValid() {
		return fmt.Errorf("%w: unknown policy %q", ErrInvalidInput, s.Search.Policy)
	}
	if !s.Open.Target.IsValid() {
		return fmt.Errorf("%w: unknown open target %q", ErrInvalidInput, s.Open.Target)
	}
	if s.Open.Rate < 0 {
		return fmt.Errorf("%w: open rate must not be negative", ErrInvalidInput)
	}
	if s.Open.Burst < 1 {
		return fmt.Errorf("%w: open burst must be at least 1", ErrInvalidInput)
	}
	return nil
}
