// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recency keeps a bounded, insertion-ordered set of recently seen
// idea titles. When an insert pushes the set past its capacity, the oldest
// entry is evicted. Len never exceeds Cap after any Add.
package recency

import (
	"container/list"
	"sync"
)

// DefaultCapacity is the number of titles retained when New is given a
// non-positive capacity.
const DefaultCapacity = 50

// Set is safe for concurrent use.
type Set struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // oldest at Front
	index    map[string]*list.Element
}

// New returns an empty Set holding at most capacity titles.
func New(capacity int) *Set {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Set{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity+1),
	}
}

// Add inserts title. A title already present is left where it is. If the
// insert overflows the set, exactly one entry (the oldest) is evicted and
// returned with evicted=true.
func (s *Set) Add(title string) (evicted string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[title]; exists {
		return "", false
	}
	s.index[title] = s.order.PushBack(title)

	if s.order.Len() <= s.capacity {
		return "", false
	}
	oldest := s.order.Front()
	s.order.Remove(oldest)
	evicted = oldest.Value.(string)
	delete(s.index, evicted)
	return evicted, true
}

// Contains reports whether title is in the set.
func (s *Set) Contains(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[title]
	return ok
}

// Len returns the number of titles held.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Cap returns the capacity.
func (s *Set) Cap() int {
	return s.capacity
}

// Items returns a snapshot of the titles, oldest first.
func (s *Set) Items() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, s.order.Len())
	for e := s.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(string))
	}
	return out
}
