package driving

import (
	"context"

	"github.com/custodia-labs/gifex/internal/core/domain"
)

// DispatchService opens result links in the user's browser.
type DispatchService interface {
	// OpenAll launches every link of set. Individual failures are reported
	// in the DispatchReport and do not stop the run.
	OpenAll(ctx context.Context, set *domain.ResultSet, opts domain.OpenOptions) (*domain.DispatchReport, error)

	// Open launches a single link.
	Open(ctx context.Context, link string) error
}
