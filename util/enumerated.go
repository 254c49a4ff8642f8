package util

import (
	"fmt"
	"sync"
)

// An EnumSet is a bidirectional mapping between strings and their
// enumerated indices. Indices are assigned in insertion order, so a set
// built from a frequency-sorted term file enumerates terms by rank.
type EnumSet struct {
	mu     sync.RWMutex
	Enum   map[string]int
	Index  []string
	Frozen bool
}

func NewEnumSet(capacity int) *EnumSet {
	return &EnumSet{
		Enum:  make(map[string]int, capacity),
		Index: make([]string, 0, capacity),
	}
}

func NewEnumSetOf(values []string) *EnumSet {
	e := NewEnumSet(len(values))
	for _, value := range values {
		e.Add(value)
	}
	return e
}

func (e *EnumSet) Add(value string) (int, bool) {
	if e.Frozen {
		panic("Cannot add value to frozen enum set")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	enum, exists := e.Enum[value]
	if exists {
		return enum, false
	}
	enum = len(e.Index)
	e.Enum[value] = enum
	e.Index = append(e.Index, value)
	return enum, true
}

func (e *EnumSet) IndexOf(value string) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	enum, exists := e.Enum[value]
	return enum, exists
}

// IndexOfOrDefault looks up a value, falling back to the given index
// for unknown values.
func (e *EnumSet) IndexOfOrDefault(value string, defaultIndex int) int {
	enum, exists := e.IndexOf(value)
	if !exists {
		return defaultIndex
	}
	return enum
}

// ValueOf returns the string for an index, or the empty string when the
// index is outside the set. Out-of-range lookups are routine for
// callers resolving sentinel values and are not an error.
func (e *EnumSet) ValueOf(index int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if index < 0 || index >= len(e.Index) {
		return ""
	}
	return e.Index[index]
}

func (e *EnumSet) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.Index)
}

// Freeze makes the set immutable so it can be shared across states
// without further synchronization.
func (e *EnumSet) Freeze() {
	e.Frozen = true
}

func (e *EnumSet) Print() {
	for i, v := range e.Index {
		fmt.Printf("%v: %v\n", i, v)
	}
}
