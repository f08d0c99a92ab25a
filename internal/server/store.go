package server

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/matzehuels/canopy/pkg/graph"
)

// ErrNotFound is returned by a [Store] when no graph exists under the
// requested name.
var ErrNotFound = errors.New("graph not found")

// Store persists named graph documents for the HTTP service.
type Store interface {
	// Put stores doc under name, replacing any previous version.
	Put(ctx context.Context, name string, doc graph.Doc) error
	// Get returns the graph stored under name, or [ErrNotFound].
	Get(ctx context.Context, name string) (graph.Doc, error)
	// Delete removes the graph stored under name. Deleting an absent
	// name is not an error.
	Delete(ctx context.Context, name string) error
	// List returns all stored names in lexical order.
	List(ctx context.Context) ([]string, error)
	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore keeps graphs in process memory. It is the default backend
// and the one used in tests; contents are lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	graphs map[string]graph.Doc
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{graphs: make(map[string]graph.Doc)}
}

func (s *MemoryStore) Put(ctx context.Context, name string, doc graph.Doc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[name] = doc
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, name string) (graph.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.graphs[name]
	if !ok {
		return graph.Doc{}, ErrNotFound
	}
	return doc, nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.graphs, name)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.graphs))
	for name := range s.graphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
