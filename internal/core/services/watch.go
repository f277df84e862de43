package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/gifex/internal/core/ports/driven"
	"github.com/custodia-labs/gifex/internal/core/ports/driving"
	"github.com/custodia-labs/gifex/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService follows export files through a FileWatcher.
type WatchService struct {
	watcher driven.FileWatcher
}

// NewWatchService creates a new watch service.
func NewWatchService(watcher driven.FileWatcher) *WatchService {
	return &WatchService{watcher: watcher}
}

// Watch starts following path.
func (s *WatchService) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	if s.watcher == nil {
		return nil, errors.New("no file watcher configured")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	ch, err := s.watcher.Watch(ctx, abs)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", abs, err)
	}
	logger.Info("watching %s for changes", abs)
	return ch, nil
}
