// Package memory provides an in-process ports.StorageFactory for local
// development and tests. Scopes live as long as the process.
package memory

import (
	"context"
	"sync"

	"github.com/freelancehub/session-gateway/internal/core/ports"
)

// StorageFactory holds every browser scope in one map.
type StorageFactory struct {
	mu     sync.RWMutex
	scopes map[string]map[string]string
}

func NewStorageFactory() *StorageFactory {
	return &StorageFactory{scopes: make(map[string]map[string]string)}
}

func (f *StorageFactory) For(sessionID string) ports.Storage {
	return &Storage{factory: f, id: sessionID}
}

// Snapshot copies the scope for sessionID. Intended for tests.
func (f *StorageFactory) Snapshot(sessionID string) map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(f.scopes[sessionID]))
	for k, v := range f.scopes[sessionID] {
		out[k] = v
	}
	return out
}

// Storage is one scope of a StorageFactory.
type Storage struct {
	factory *StorageFactory
	id      string
}

// NewStorage returns a standalone scope, handy where a single browser is enough.
func NewStorage() *Storage {
	return NewStorageFactory().For("local").(*Storage)
}

func (s *Storage) Get(_ context.Context, key string) (string, bool, error) {
	s.factory.mu.RLock()
	defer s.factory.mu.RUnlock()
	v, ok := s.factory.scopes[s.id][key]
	return v, ok, nil
}

func (s *Storage) Set(_ context.Context, key, value string) error {
	s.factory.mu.Lock()
	defer s.factory.mu.Unlock()
	scope, ok := s.factory.scopes[s.id]
	if !ok {
		scope = make(map[string]string)
		s.factory.scopes[s.id] = scope
	}
	scope[key] = value
	return nil
}

func (s *Storage) Delete(_ context.Context, keys ...string) error {
	s.factory.mu.Lock()
	defer s.factory.mu.Unlock()
	scope := s.factory.scopes[s.id]
	for _, k := range keys {
		delete(scope, k)
	}
	return nil
}
