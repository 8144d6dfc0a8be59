// Package cache is the client-side query cache: readers go through
// GetOrFetch, mutations only ever Invalidate. Responses from mutations are
// never patched in, so the server stays the single source of truth after
// every state-changing action.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Well-known resource keys shared by the state machines and the realtime
// watcher.
const (
	KeyAssessments = "assessments"
	KeyTemplates   = "templates"
)

// AssessmentKey is the cache key for a single assessment.
func AssessmentKey(id string) string {
	return Key("assessment", id)
}

// TemplateKey is the cache key for a single template with its categories.
func TemplateKey(id string) string {
	return Key("template", id)
}

type FetchFunc func(ctx context.Context) (any, error)

// Store holds fetched resources keyed by resource kind/id.
type Store struct {
	mu      sync.Mutex
	entries map[string]any
}

func New() *Store {
	return &Store{entries: make(map[string]any)}
}

// Key builds a cache key from resource kind and id parts.
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

// GetOrFetch returns the cached value for key, fetching and storing it on a
// miss. A failed fetch caches nothing.
func (s *Store) GetOrFetch(ctx context.Context, key string, fetch FetchFunc) (any, error) {
	s.mu.Lock()
	if v, ok := s.entries[key]; ok {
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	v, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries[key] = v
	s.mu.Unlock()
	return v, nil
}

// Invalidate drops the given keys so the next read refetches. Stale in-flight
// responses that land afterwards are superseded by that refetch.
func (s *Store) Invalidate(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
}

// Reset drops everything, e.g. on sign-out.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]any)
}

// Fetch is the typed wrapper around Store.GetOrFetch.
func Fetch[T any](ctx context.Context, s *Store, key string, fn func(context.Context) (T, error)) (T, error) {
	v, err := s.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache: key %q holds %T", key, v)
	}
	return t, nil
}
