package decoration

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Store is an in-memory Namespace.
type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]Decoration
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{docs: make(map[string]map[string]Decoration)}
}

// Place implements Namespace.
func (s *Store) Place(doc string, d Decoration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	decs, ok := s.docs[doc]
	if !ok {
		decs = make(map[string]Decoration)
		s.docs[doc] = decs
	}
	d.Handle = uuid.NewString()
	decs[d.Handle] = d
	return d.Handle, nil
}

// Remove implements Namespace.
func (s *Store) Remove(doc, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	decs, ok := s.docs[doc]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, doc)
	}
	if _, ok := decs[handle]; !ok {
		return fmt.Errorf("%w: %s", ErrStaleHandle, handle)
	}
	delete(decs, handle)
	return nil
}

// List implements Namespace. Unknown documents have no decorations.
func (s *Store) List(doc string) ([]Decoration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	decs := s.docs[doc]
	out := make([]Decoration, 0, len(decs))
	for _, d := range decs {
		out = append(out, d)
	}
	Sort(out)
	return out, nil
}

// Count returns the number of decorations held for doc.
func (s *Store) Count(doc string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs[doc])
}

// Total returns the number of decorations across all documents.
func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, decs := range s.docs {
		n += len(decs)
	}
	return n
}

// Drop forgets doc and all of its decorations.
func (s *Store) Drop(doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, doc)
}

// Sort orders decorations by row, then start column, then handle.
func Sort(decs []Decoration) {
	slices.SortFunc(decs, func(a, b Decoration) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		if c := cmp.Compare(a.StartCol, b.StartCol); c != 0 {
			return c
		}
		return cmp.Compare(a.Handle, b.Handle)
	})
}
