package driving

import (
	"context"

	"github.com/custodia-labs/gifex/internal/core/domain"
)

// FinderService locates the GIF list inside a Document.
type FinderService interface {
	// Find resolves path in doc and projects the list to a ResultSet.
	// A list with zero entries is a successful, empty Result.
	Find(
		ctx context.Context,
		doc *domain.Document,
		path domain.KeyPath,
		policy domain.ProjectionPolicy,
	) (*domain.Result, error)
}
