package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/gifex/internal/core/domain"
)

// LoaderService turns uploaded text into a Document.
type LoaderService interface {
	// Load reads r to the end and parses it as JSON.
	// Invalid JSON fails with a *domain.ParseError.
	Load(ctx context.Context, name string, r io.Reader) (*domain.Document, error)

	// LoadFile opens path and loads it.
	LoadFile(ctx context.Context, path string) (*domain.Document, error)
}
