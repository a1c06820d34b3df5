package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"oncampus/internal/storage"
)

// Outcome names the branch Initialize took.
type Outcome string

const (
	// OutcomeSeeded: nothing was persisted, the seed was written.
	OutcomeSeeded Outcome = "seeded"
	// OutcomeReseeded: the persisted fingerprint was stale, the seed replaced it.
	OutcomeReseeded Outcome = "reseeded"
	// OutcomeLoaded: the persisted list was current and loaded as is.
	OutcomeLoaded Outcome = "loaded"
	// OutcomeFallback: storage could not be read, decoded or written; the
	// seed is served from memory.
	OutcomeFallback Outcome = "fallback"
)

type InitResult struct {
	Kind              string  `json:"kind"`
	Outcome           Outcome `json:"outcome"`
	Fingerprint       string  `json:"fingerprint"`
	StoredFingerprint string  `json:"storedFingerprint,omitempty"`
	Count             int     `json:"count"`
	Err               error   `json:"-"`
}

// Initialize reconciles the store with persisted storage. It never fails:
// storage errors are logged and the seed is used instead. The store counts
// as initialized afterwards whatever happened, and calling it again repeats
// the reconciliation.
func (s *Store[T]) Initialize(ctx context.Context) InitResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := s.kind.Seed()
	if seed == nil {
		seed = []T{}
	}

	result := s.reconcile(ctx, seed)
	result.Kind = s.kind.Name
	result.Count = len(s.items)
	s.initialized = true

	if result.Err != nil {
		s.log.Error("STORE", fmt.Sprintf("%s: %s with %d seed items: %v", s.kind.Name, result.Outcome, result.Count, result.Err))
	} else {
		s.log.Info("STORE", fmt.Sprintf("%s: %s (%d items, version %s)", s.kind.Name, result.Outcome, result.Count, result.Fingerprint))
	}
	return result
}

func (s *Store[T]) reconcile(ctx context.Context, seed []T) InitResult {
	fallback := func(res InitResult, err error) InitResult {
		s.items = slices.Clone(seed)
		res.Outcome = OutcomeFallback
		res.Err = err
		return res
	}

	encodedSeed, err := json.Marshal(seed)
	if err != nil {
		return fallback(InitResult{}, fmt.Errorf("encoding seed: %w", err))
	}
	result := InitResult{Fingerprint: s.cfg.fingerprint(encodedSeed)}

	stored, err := s.kv.Get(ctx, s.kind.StorageKey)
	missing := errors.Is(err, storage.ErrKeyNotFound)
	if err != nil && !missing {
		return fallback(result, fmt.Errorf("reading %s: %w", s.kind.StorageKey, err))
	}

	storedVersion, err := s.kv.Get(ctx, s.kind.VersionKey)
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return fallback(result, fmt.Errorf("reading %s: %w", s.kind.VersionKey, err))
	}
	result.StoredFingerprint = storedVersion

	if missing || stored == "" || storedVersion != result.Fingerprint {
		result.Outcome = OutcomeReseeded
		if missing || stored == "" {
			result.Outcome = OutcomeSeeded
		}
		if err := s.kv.Set(ctx, s.kind.StorageKey, string(encodedSeed)); err != nil {
			return fallback(result, fmt.Errorf("%w: %s: %w", ErrStorageWrite, s.kind.StorageKey, err))
		}
		if err := s.kv.Set(ctx, s.kind.VersionKey, result.Fingerprint); err != nil {
			return fallback(result, fmt.Errorf("%w: %s: %w", ErrStorageWrite, s.kind.VersionKey, err))
		}
		s.log.LogStore("SEED", s.kind.StorageKey, fmt.Sprintf("version %q -> %q", storedVersion, result.Fingerprint))
		s.items = slices.Clone(seed)
		return result
	}

	var items []T
	if err := json.Unmarshal([]byte(stored), &items); err != nil {
		return fallback(result, fmt.Errorf("decoding %s: %w", s.kind.StorageKey, err))
	}
	if items == nil {
		items = []T{}
	}
	s.items = items
	result.Outcome = OutcomeLoaded
	return result
}
