package driven

import "context"

// FileWatcher reports changes to a single file.
type FileWatcher interface {
	// Watch emits on the returned channel each time path is written or
	// recreated. The channel is closed when ctx is done or watching fails.
	Watch(ctx context.Context, path string) (<-chan struct{}, error)
}
