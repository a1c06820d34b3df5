// Package collection keeps an in-memory list of entities in step with a
// key-value store.
//
// Every Store is seeded from compiled-in defaults. On Initialize the store
// compares a fingerprint of the seed with the fingerprint saved next to the
// persisted list: a missing list or a different fingerprint replaces the
// persisted list with the seed, otherwise the persisted list is trusted. Add
// and Remove write the whole list back on every call.
//
// The default fingerprint is the length of the JSON-encoded seed. Two seeds
// of equal encoded length are indistinguishable under it; use
// SHA256Fingerprint when seed edits must always reseed.
package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"sync"

	"oncampus/internal/clock"
	"oncampus/internal/logger"
	"oncampus/internal/storage"
)

// IDLayout renders creation timestamps used as entity ids.
const IDLayout = "2006-01-02T15:04:05.000Z"

var (
	// ErrNotInitialized is returned by Add and Remove before Initialize ran.
	// Nothing is changed or persisted in that case.
	ErrNotInitialized = errors.New("collection not initialized")
	// ErrStorageWrite wraps a failed write; the in-memory list is left as it
	// was before the call.
	ErrStorageWrite = errors.New("storage write failed")
)

// Entity is implemented by the value types kept in a Store.
type Entity[T any] interface {
	Identity() string
	ImageKey() string
	// Stamp returns a copy carrying the given id and image key.
	Stamp(id, imageID string) T
}

// Kind describes one collection: where it lives and what it is seeded with.
type Kind[T any] struct {
	Name       string
	StorageKey string
	VersionKey string
	Seed       func() []T
	ImagePool  []string
}

// NewKind derives the storage and version keys from name as
// "oncampus-<name>" and "oncampus-<name>-version".
func NewKind[T any](name string, seed func() []T, pool []string) Kind[T] {
	return Kind[T]{
		Name:       name,
		StorageKey: "oncampus-" + name,
		VersionKey: "oncampus-" + name + "-version",
		Seed:       seed,
		ImagePool:  pool,
	}
}

type settings struct {
	clock       clock.Clock
	fingerprint Fingerprint
	pick        func(n int) int
}

type Option func(*settings)

// WithClock sets the clock used to generate ids.
func WithClock(c clock.Clock) Option {
	return func(s *settings) { s.clock = c }
}

// WithFingerprint replaces LengthFingerprint.
func WithFingerprint(f Fingerprint) Option {
	return func(s *settings) { s.fingerprint = f }
}

// WithPicker sets the function choosing an index in [0, n) from the image pool.
func WithPicker(pick func(n int) int) Option {
	return func(s *settings) { s.pick = pick }
}

type Store[T Entity[T]] struct {
	kind Kind[T]
	kv   storage.Store
	log  *logger.Logger
	cfg  settings

	mu          sync.Mutex
	items       []T
	initialized bool
}

func New[T Entity[T]](kind Kind[T], kv storage.Store, log *logger.Logger, opts ...Option) *Store[T] {
	cfg := settings{
		clock:       clock.NewSystem(),
		fingerprint: LengthFingerprint,
		pick:        rand.Intn,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if log == nil {
		log = logger.NewWithWriter(io.Discard)
	}
	return &Store[T]{
		kind:  kind,
		kv:    kv,
		log:   log,
		cfg:   cfg,
		items: []T{},
	}
}

// Name is the kind name, e.g. "clubs".
func (s *Store[T]) Name() string { return s.kind.Name }

func (s *Store[T]) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Items returns a copy of the list. It is empty until Initialize has run so
// callers never show seed data that is about to be replaced.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return []T{}
	}
	return slices.Clone(s.items)
}

// Find returns the entity with the given id.
func (s *Store[T]) Find(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if !s.initialized {
		return zero, false
	}
	for _, item := range s.items {
		if item.Identity() == id {
			return item, true
		}
	}
	return zero, false
}

// Add stamps item with a timestamp id and, when it has no image key, one
// picked from the kind's pool, then appends it and persists the list.
func (s *Store[T]) Add(ctx context.Context, item T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if !s.initialized {
		return zero, ErrNotInitialized
	}

	id := s.cfg.clock.Now().UTC().Format(IDLayout)
	imageID := item.ImageKey()
	if imageID == "" && len(s.kind.ImagePool) > 0 {
		imageID = s.kind.ImagePool[s.cfg.pick(len(s.kind.ImagePool))]
	}
	created := item.Stamp(id, imageID)

	updated := append(slices.Clone(s.items), created)
	if err := s.persist(ctx, updated); err != nil {
		return zero, err
	}
	s.items = updated

	s.log.Info("STORE", fmt.Sprintf("%s: added %s (%d items)", s.kind.Name, id, len(updated)))
	return created, nil
}

// Remove drops the entity with the given id and persists the list. removed is
// false when no entity matched; the list is still written back.
func (s *Store[T]) Remove(ctx context.Context, id string) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return false, ErrNotInitialized
	}

	updated := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if item.Identity() == id {
			removed = true
			continue
		}
		updated = append(updated, item)
	}

	if err := s.persist(ctx, updated); err != nil {
		return false, err
	}
	s.items = updated

	if removed {
		s.log.Info("STORE", fmt.Sprintf("%s: removed %s (%d items)", s.kind.Name, id, len(updated)))
	} else {
		s.log.Debug("STORE", fmt.Sprintf("%s: remove %s matched nothing", s.kind.Name, id))
	}
	return removed, nil
}

func (s *Store[T]) persist(ctx context.Context, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.kind.Name, err)
	}
	if err := s.kv.Set(ctx, s.kind.StorageKey, string(data)); err != nil {
		s.log.Error("STORE", fmt.Sprintf("%s: write %s failed: %v", s.kind.Name, s.kind.StorageKey, err))
		return fmt.Errorf("%w: %s: %w", ErrStorageWrite, s.kind.StorageKey, err)
	}
	return nil
}
