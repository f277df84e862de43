package services

import (
	"context"
	"strconv"

	"github.com/custodia-labs/gifex/internal/core/domain"
	"github.com/custodia-labs/gifex/internal/core/ports/driving"
	"github.com/custodia-labs/gifex/internal/logger"
)

// Ensure FinderService implements the interface.
var _ driving.FinderService = (*FinderService)(nil)

// FinderService resolves the container -> list key path and projects
// the list into a ResultSet.
type FinderService struct{}

// NewFinderService creates a new finder service.
func NewFinderService() *FinderService {
	return &FinderService{}
}

// Find searches doc for path.Container, then for path.List inside it, and
// projects what it finds according to policy. An empty policy means
// domain.PolicySkip.
func (s *FinderService) Find(
	ctx context.Context,
	doc *domain.Document,
	path domain.KeyPath,
	policy domain.ProjectionPolicy,
) (*domain.Result, error) {
	if doc == nil {
		return nil, domain.ErrNoDocument
	}
	if err := path.Validate(); err != nil {
		return nil, err
	}
	if policy == "" {
		policy = domain.PolicySkip
	}
	if !policy.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = path.Normalise()

	logger.Section("Find")
	done := logger.Timed("find " + path.String())
	defer done()

	container, ok := Find(doc.Root, path.Container)
	if !ok {
		logger.Debug("no container under %q", path.Container)
		return nil, &domain.NotFoundError{Key: path.Container}
	}
	logger.Debug("container %q is an %s with %d children", path.Container, container.Kind(), container.Len())

	list, ok := Find(container, path.List)
	if !ok {
		logger.Debug("no list under %q", path.List)
		return nil, &domain.NotFoundError{Key: path.List}
	}

	set, issues, err := Project(list, path.List, policy)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		logger.Warn("entry %q: %s", issue.ID, issue.Reason)
	}
	logger.Info("found %d links under %s", set.Len(), path)

	return &domain.Result{Path: path, Set: set, Issues: issues}, nil
}

// Find performs a depth-first pre-order search of node for the first
// property named key whose value is an object or array.
//
// At each container the node's own property is checked before any child
// is visited. A property holding a scalar or null does not match, and
// scalars are never descended into. Children are visited in document
// order: insertion order for objects, index order for arrays, whose
// properties are their decimal indices.
func Find(node domain.Value, key string) (domain.Value, bool) {
	switch node.Kind() {
	case domain.KindObject:
		obj, _ := node.AsObject()
		if v, ok := obj.Get(key); ok && v.IsContainer() {
			return v, true
		}
		for _, m := range obj.Members() {
			if found, ok := Find(m.Value, key); ok {
				return found, true
			}
		}
	case domain.KindArray:
		items, _ := node.AsArray()
		if i, ok := arrayIndex(key, len(items)); ok && items[i].IsContainer() {
			return items[i], true
		}
		for i := range items {
			if found, ok := Find(items[i], key); ok {
				return found, true
			}
		}
	case domain.KindNull, domain.KindBool, domain.KindNumber, domain.KindString:
		// No properties.
	}
	return domain.Value{}, false
}

// arrayIndex reports whether key is the canonical decimal form of an
// index below n.
func arrayIndex(key string, n int) (int, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= n {
		return 0, false
	}
	return i, true
}
