package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/custodia-labs/gifex/internal/core/domain"
	"github.com/custodia-labs/gifex/internal/core/ports/driving"
	"github.com/custodia-labs/gifex/internal/logger"
)

// Ensure LoaderService implements the interface.
var _ driving.LoaderService = (*LoaderService)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoaderService parses uploaded export files.
type LoaderService struct {
	now   func() time.Time
	newID func() string
}

// NewLoaderService creates a new loader service.
func NewLoaderService() *LoaderService {
	return &LoaderService{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Load reads r to the end and parses it as a single JSON value.
func (s *LoaderService) Load(ctx context.Context, name string, r io.Reader) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", domain.ErrInvalidInput)
	}

	logger.Section("Load")
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	size := int64(len(data))
	logger.Debug("read %s (%s)", name, humanize.Bytes(uint64(size)))

	data = bytes.TrimPrefix(data, utf8BOM)

	if err := validateJSON(name, data); err != nil {
		logger.Warn("%v", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := logger.Timed("decode " + name)
	root, err := decodeValue(data)
	done()
	if err != nil {
		return nil, &domain.ParseError{Name: name, Offset: -1, Err: err}
	}

	doc := &domain.Document{
		ID:       s.newID(),
		Name:     name,
		Size:     size,
		LoadedAt: s.now(),
		Root:     root,
	}
	logger.Info("loaded %s as document %s (top-level %s)", name, doc.ID, root.Kind())
	return doc, nil
}

// LoadFile opens path and loads its contents.
func (s *LoaderService) LoadFile(ctx context.Context, path string) (*domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := s.Load(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// validateJSON runs the standard parser over data so that anything it
// rejects is rejected here too, with its offset.
func validateJSON(name string, data []byte) error {
	if json.Valid(data) {
		return nil
	}

	var probe any
	err := json.Unmarshal(data, &probe)
	if err == nil {
		err = errors.New("not a single JSON value")
	}

	offset := int64(-1)
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		offset = syntaxErr.Offset
	}
	return &domain.ParseError{Name: name, Offset: offset, Err: err}
}
