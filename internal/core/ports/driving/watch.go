package driving

import "context"

// WatchService follows a loaded file so it can be re-loaded when it changes.
type WatchService interface {
	// Watch emits each time path changes on disk. The channel is closed
	// when ctx is done.
	Watch(ctx context.Context, path string) (<-chan struct{}, error)
}
