package util

import (
	"fmt"
	"sync"
)

// EnumSet assigns dense, insertion ordered indices to values. Reads are safe
// for concurrent use; a Frozen set rejects additions.
type EnumSet struct {
	mu     sync.RWMutex
	Enum   map[interface{}]int
	Index  []interface{}
	Frozen bool
}

func (e *EnumSet) Add(value interface{}) (int, bool) {
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

func (e *EnumSet) IndexOf(value interface{}) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	enum, exists := e.Enum[value]
	return enum, exists
}

func (e *EnumSet) ValueOf(index int) interface{} {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if index < 0 {
		panic("Negative index requested")
	}
	if len(e.Index) <= index {
		panic("Unknown index requested: " + fmt.Sprintf("%v of %v", index, len(e.Index)))
	}
	return e.Index[index]
}

func (e *EnumSet) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.Index)
}

// Strings returns the values in index order; all values must be strings.
func (e *EnumSet) Strings() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	retval := make([]string, len(e.Index))
	for i, v := range e.Index {
		retval[i] = v.(string)
	}
	return retval
}

func NewEnumSet(capacity int) *EnumSet {
	e := &EnumSet{
		sync.RWMutex{},
		make(map[interface{}]int, capacity),
		make([]interface{}, 0, capacity),
		false,
	}
	return e
}

// NewStringEnumSet builds a frozen set from values, in order. Duplicates keep
// their first index.
func NewStringEnumSet(values []string) *EnumSet {
	e := NewEnumSet(len(values))
	for _, v := range values {
		e.Add(v)
	}
	e.Frozen = true
	return e
}
