package bloom

import (
	"iter"
	"sync"
)

// Synchronized guards a Filter with a single RWMutex so that it can be shared
// between goroutines.
type Synchronized[T any] struct {
	mu sync.RWMutex
	f  *Filter[T]
}

// NewSynchronized takes ownership of f. The caller must not use f directly
// afterwards.
func NewSynchronized[T any](f *Filter[T]) *Synchronized[T] {
	return &Synchronized[T]{f: f}
}

func (s *Synchronized[T]) Contains(element T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.Contains(element)
}

func (s *Synchronized[T]) Add(element T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.f.Add(element)
}

// Update holds the lock while elements is consumed.
func (s *Synchronized[T]) Update(elements iter.Seq[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.f.Update(elements)
}

func (s *Synchronized[T]) EstimatedCardinality() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.EstimatedCardinality()
}

func (s *Synchronized[T]) FillRatio() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.FillRatio()
}
