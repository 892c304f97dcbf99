package rtree

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	// defaultMaxEntries is M, the maximum entries per node.
	defaultMaxEntries = 10
	// defaultMinEntries is m, the minimum entries per non-root node.
	defaultMinEntries = 5
	// defaultLockTimeout bounds how long Add/Delete/queries wait for the
	// index lock before giving up with ErrLockTimeout.
	defaultLockTimeout = 10 * time.Second
)

// Option configures an Index at construction time.
type Option[T comparable] func(*Index[T])

// WithFanout overrides the node fanout. maxEntries must be at least 2 and
// minEntries must be in [1, maxEntries/2].
func WithFanout[T comparable](maxEntries, minEntries int) Option[T] {
	return func(idx *Index[T]) {
		idx.maxEntries = maxEntries
		idx.minEntries = minEntries
	}
}

// WithLockTimeout overrides how long Add/Delete/queries wait to acquire
// the index lock before failing with ErrLockTimeout.
func WithLockTimeout[T comparable](timeout time.Duration) Option[T] {
	return func(idx *Index[T]) { idx.lockTimeout = timeout }
}

// WithLogger overrides the zap logger used for index lifecycle and
// operation logging. Defaults to zap.NewNop().
func WithLogger[T comparable](logger *zap.Logger) Option[T] {
	return func(idx *Index[T]) { idx.logger = logger }
}

// WithMetricsRegisterer registers the index's Prometheus collectors
// against reg instead of leaving them unregistered. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics
// endpoint.
func WithMetricsRegisterer[T comparable](reg prometheus.Registerer) Option[T] {
	return func(idx *Index[T]) { idx.registerer = reg }
}

// Index is a payload-bearing façade over an in-memory R-tree: it maps
// caller-supplied payloads of type T to the int64 ids the tree core
// stores in leaf entries, and serializes access with a timed
// reader/writer lock so a single Index can be shared across goroutines.
type Index[T comparable] struct {
	id         uuid.UUID
	logger     *zap.Logger
	maxEntries int
	minEntries int
	lockTimeout time.Duration
	registerer prometheus.Registerer

	lock timedRWMutex
	tree *tree

	nextID     int64
	idsToItems map[int64]T
	itemsToIds map[T]int64
}

// NewIndex builds an empty Index with the given options applied over
// defaults of M=10, m=5, and a 10s lock timeout.
func NewIndex[T comparable](opts ...Option[T]) (*Index[T], error) {
	idx := &Index[T]{
		id:          uuid.New(),
		logger:      zap.NewNop(),
		maxEntries:  defaultMaxEntries,
		minEntries:  defaultMinEntries,
		lockTimeout: defaultLockTimeout,
		idsToItems:  make(map[int64]T),
		itemsToIds:  make(map[T]int64),
		nextID:      math.MinInt64,
	}
	for _, opt := range opts {
		opt(idx)
	}
	if idx.maxEntries < 2 {
		return nil, fmt.Errorf("NewIndex: maxEntries must be >= 2, got %d: %w", idx.maxEntries, ErrInvalidArgument)
	}
	if idx.minEntries < 1 || idx.minEntries > idx.maxEntries/2 {
		return nil, fmt.Errorf("NewIndex: minEntries must be in [1, maxEntries/2], got %d: %w", idx.minEntries, ErrInvalidArgument)
	}

	metrics := newTreeMetrics(idx.registerer, idx.id.String())
	idx.tree = newTree(idx.maxEntries, idx.minEntries, metrics)
	idx.logger = idx.logger.With(zap.String("index_id", idx.id.String()))
	idx.logger.Info("rtree index created", zap.Int("max_entries", idx.maxEntries), zap.Int("min_entries", idx.minEntries))
	return idx, nil
}

// ID returns the index's identity, stable for the process lifetime of
// this Index value.
func (idx *Index[T]) ID() uuid.UUID {
	return idx.id
}

// Add indexes item under rect. Returns ErrDuplicatePayload if item is
// already indexed; payloads are unique per Index.
func (idx *Index[T]) Add(rect Rectangle, item T) error {
	if err := idx.lock.lock(idx.lockTimeout); err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	defer idx.lock.unlock()

	if _, exists := idx.itemsToIds[item]; exists {
		return fmt.Errorf("Add: %w", ErrDuplicatePayload)
	}

	id := idx.nextID
	idx.nextID++

	if err := idx.tree.insert(rect, id); err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	idx.idsToItems[id] = item
	idx.itemsToIds[item] = id
	idx.logger.Debug("added item", zap.Any("rect", rect))
	return nil
}

// Delete removes item's entry at rect from the index. Returns
// ErrNotFound if item is not currently indexed under that exact
// rectangle.
func (idx *Index[T]) Delete(rect Rectangle, item T) error {
	if err := idx.lock.lock(idx.lockTimeout); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	defer idx.lock.unlock()

	id, exists := idx.itemsToIds[item]
	if !exists {
		return fmt.Errorf("Delete: %w", ErrNotFound)
	}

	found, err := idx.tree.delete(rect, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if !found {
		return fmt.Errorf("Delete: %w", ErrNotFound)
	}
	delete(idx.idsToItems, id)
	delete(idx.itemsToIds, item)
	idx.logger.Debug("deleted item", zap.Any("rect", rect))
	return nil
}

// Intersects returns every item whose rectangle overlaps rect.
func (idx *Index[T]) Intersects(rect Rectangle) ([]T, error) {
	if err := idx.lock.rLock(idx.lockTimeout); err != nil {
		return nil, fmt.Errorf("Intersects: %w", err)
	}
	defer idx.lock.rUnlock()

	var result []T
	idx.tree.intersects(rect, func(id int64) {
		result = append(result, idx.idsToItems[id])
	})
	return result, nil
}

// Contains returns every item whose rectangle is fully enclosed by rect.
func (idx *Index[T]) Contains(rect Rectangle) ([]T, error) {
	if err := idx.lock.rLock(idx.lockTimeout); err != nil {
		return nil, fmt.Errorf("Contains: %w", err)
	}
	defer idx.lock.rUnlock()

	var result []T
	idx.tree.contains(rect, func(id int64) {
		result = append(result, idx.idsToItems[id])
	})
	return result, nil
}

// Nearest returns every item whose rectangle achieves the minimum
// distance to p among all items within maxDistance. If maxDistance is
// non-positive, math.Inf(1) is used, meaning every item is a candidate.
func (idx *Index[T]) Nearest(p Point, maxDistance float64) ([]T, error) {
	if err := idx.lock.rLock(idx.lockTimeout); err != nil {
		return nil, fmt.Errorf("Nearest: %w", err)
	}
	defer idx.lock.rUnlock()

	if maxDistance <= 0 {
		maxDistance = math.Inf(1)
	}
	ids := idx.tree.nearest(p, maxDistance)
	result := make([]T, 0, len(ids))
	for _, id := range ids {
		result = append(result, idx.idsToItems[id])
	}
	return result, nil
}

// Count returns the number of items currently indexed.
func (idx *Index[T]) Count() (int, error) {
	if err := idx.lock.rLock(idx.lockTimeout); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	defer idx.lock.rUnlock()
	return len(idx.idsToItems), nil
}

// Bounds returns the MBR of every indexed item, or ok=false if the index
// is empty.
func (idx *Index[T]) Bounds() (rect Rectangle, ok bool, err error) {
	if err := idx.lock.rLock(idx.lockTimeout); err != nil {
		return Rectangle{}, false, fmt.Errorf("Bounds: %w", err)
	}
	defer idx.lock.rUnlock()
	rect, ok = idx.tree.bounds()
	return rect, ok, nil
}
