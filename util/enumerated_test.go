package util

import (
	"sync"
	"testing"
)

func TestEnumSetAdd(t *testing.T) {
	e := NewEnumSet(4)
	i, added := e.Add("person-start")
	if i != 0 || !added {
		t.Errorf("Expected (0, true), got (%d, %v)", i, added)
	}
	e.Add("person-cont")
	i, added = e.Add("person-start")
	if i != 0 || added {
		t.Errorf("Expected existing value at 0, got (%d, %v)", i, added)
	}
	if e.Len() != 2 {
		t.Errorf("Expected 2 values, got %d", e.Len())
	}
	if e.ValueOf(1) != "person-cont" {
		t.Errorf("Expected person-cont at 1, got %v", e.ValueOf(1))
	}
}

func TestFrozenEnumSet(t *testing.T) {
	e := NewStringEnumSet([]string{"B-NP", "I-NP", "O", "B-NP"})
	if e.Len() != 3 {
		t.Errorf("Expected 3 distinct values, got %d", e.Len())
	}
	strs := e.Strings()
	if strs[2] != "O" {
		t.Errorf("Expected O at index 2, got %s", strs[2])
	}
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic adding to frozen set")
		}
	}()
	e.Add("B-VP")
}

func TestEnumSetConcurrentReads(t *testing.T) {
	e := NewStringEnumSet([]string{"a", "b", "c"})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if idx, ok := e.IndexOf("c"); !ok || idx != 2 {
					t.Errorf("Expected c at 2, got %d %v", idx, ok)
				}
				_ = e.ValueOf(j % 3)
			}
		}()
	}
	wg.Wait()
}
