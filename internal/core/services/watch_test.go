package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWatcher implements driven.FileWatcher for testing.
type mockWatcher struct {
	WatchFunc func(ctx context.Context, path string) (<-chan struct{}, error)
}

func (m *mockWatcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx, path)
	}
	return make(chan struct{}), nil
}

func TestWatchService_Watch_ResolvesPath(t *testing.T) {
	var got string
	s := NewWatchService(&mockWatcher{
		WatchFunc: func(_ context.Context, path string) (<-chan struct{}, error) {
			got = path
			return make(chan struct{}), nil
		},
	})

	ch, err := s.Watch(context.Background(), "user.json")

	require.NoError(t, err)
	assert.NotNil(t, ch)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "user.json", filepath.Base(got))
}

func TestWatchService_Watch_Error(t *testing.T) {
	s := NewWatchService(&mockWatcher{
		WatchFunc: func(context.Context, string) (<-chan struct{}, error) {
			return nil, errors.New("too many watches")
		},
	})

	_, err := s.Watch(context.Background(), "user.json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many watches")
}

func TestWatchService_Watch_NoWatcher(t *testing.T) {
	_, err := NewWatchService(nil).Watch(context.Background(), "user.json")

	assert.Error(t, err)
}
