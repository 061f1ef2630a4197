// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package handle defines a generational handle table useful
// for resource management (e.g., native object names and
// non-owning references that must detect staleness).
package handle

import (
	"math/bits"
	"sync"
)

// ID identifies an element of a Table.
// The zero ID is never returned by Insert.
type ID struct {
	Index int
	Gen   uint32
}

// IsZero returns whether id is the zero ID.
func (id ID) IsZero() bool { return id == ID{} }

// slot is what a Table stores.
type slot[T any] struct {
	data T
	// Odd while the slot is in use.
	gen uint32
}

// Table stores values of type T and hands out IDs that
// become invalid when the value is removed, even if the
// slot is reused afterwards.
// It is safe for concurrent use.
type Table[T any] struct {
	mu    sync.Mutex
	slots []slot[T]
	// One bit per slot; set bits are in use.
	used []uint64
	n    int
}

// Insert inserts data into m.
// It returns an ID that identifies data in m.
func (m *Table[T]) Insert(data T) ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, ok := m.search()
	if !ok {
		idx = len(m.slots)
		// Grow by a whole word of slots.
		var more [64]slot[T]
		m.slots = append(m.slots, more[:]...)
		m.used = append(m.used, 0)
	}
	m.used[idx/64] |= 1 << (idx % 64)
	s := &m.slots[idx]
	s.gen++
	s.data = data
	m.n++
	return ID{idx, s.gen}
}

// search locates an unused slot.
func (m *Table[T]) search() (int, bool) {
	for i, x := range m.used {
		if x == ^uint64(0) {
			continue
		}
		return i*64 + bits.TrailingZeros64(^x), true
	}
	return 0, false
}

// lookup returns the slot identified by id, or nil if
// id is stale or out of range.
// m.mu must be held.
func (m *Table[T]) lookup(id ID) *slot[T] {
	if id.Index < 0 || id.Index >= len(m.slots) {
		return nil
	}
	s := &m.slots[id.Index]
	if s.gen != id.Gen || s.gen&1 == 0 {
		return nil
	}
	return s
}

// Get returns the data identified by id.
// ok is false if id does not identify live data.
func (m *Table[T]) Get(id ID) (data T, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.lookup(id); s != nil {
		return s.data, true
	}
	return
}

// Remove removes the data identified by id and returns
// it. Any copy of id will fail to Get from then on.
// ok is false if id does not identify live data.
func (m *Table[T]) Remove(id ID) (data T, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.lookup(id)
	if s == nil {
		return
	}
	data = s.data
	var zero T
	s.data = zero
	s.gen++
	m.used[id.Index/64] &^= 1 << (id.Index % 64)
	m.n--
	return data, true
}

// Len returns the number of live elements in m.
func (m *Table[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n
}
