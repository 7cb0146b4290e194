// Package store persists field values per document. Keys are
// (documentID, fieldName) pairs with last-write-wins semantics; no
// transactional guarantees beyond that.
package store

import "sync"

// Store is the durable map of field name to value for each document.
type Store interface {
	// Get returns the stored value and whether one exists.
	Get(documentID, fieldName string) (string, bool)

	// Set stores a value, replacing any previous one.
	Set(documentID, fieldName, value string) error

	// GetAll returns every stored value for the document.
	GetAll(documentID string) (map[string]string, error)

	// Clear removes every stored value for the document.
	Clear(documentID string) error

	// Close releases underlying resources.
	Close() error
}

// MemoryStore is the in-memory default, used when no store path is
// configured. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(documentID, fieldName string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.docs[documentID][fieldName]
	return v, ok
}

func (s *MemoryStore) Set(documentID, fieldName, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[documentID]
	if !ok {
		doc = make(map[string]string)
		s.docs[documentID] = doc
	}
	doc[fieldName] = value
	return nil
}

func (s *MemoryStore) GetAll(documentID string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.docs[documentID]))
	for k, v := range s.docs[documentID] {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Clear(documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, documentID)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
