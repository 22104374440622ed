package types

import "testing"

func TestSpanRelations(t *testing.T) {
	a := Span{Start: 0, End: 3}
	b := Span{Start: 1, End: 2}
	c := Span{Start: 3, End: 5}
	if !a.Contains(b) {
		t.Error("Expected [0..3) to contain [1..2)")
	}
	if a.Intersects(c) {
		t.Error("Adjacent spans should not intersect")
	}
	if !a.Intersects(b) {
		t.Error("Expected nested spans to intersect")
	}
	if a.Length() != 3 {
		t.Errorf("Expected length 3, got %d", a.Length())
	}
}

func TestNameSampleString(t *testing.T) {
	sample, err := NewNameSample(
		[]string{"Mr", "John", "Smith", "works", "at", "Acme", "."},
		[]Span{{5, 6, "organization"}, {1, 3, "person"}},
		false)
	if err != nil {
		t.Fatal(err.Error())
	}
	expected := "Mr <START:person> John Smith <END> works at <START:organization> Acme <END> ."
	if sample.String() != expected {
		t.Errorf("Expected %q, got %q", expected, sample.String())
	}
	if sample.Names[0].Type != "person" {
		t.Errorf("Expected names sorted by start, got %v", sample.Names)
	}
}

func TestNameSampleRejectsOverlap(t *testing.T) {
	_, err := NewNameSample([]string{"a", "b", "c"}, []Span{{0, 2, "x"}, {1, 3, "y"}}, false)
	if err == nil {
		t.Error("Expected overlapping names to be rejected")
	}
	_, err = NewNameSample([]string{"a"}, []Span{{0, 2, "x"}}, false)
	if err == nil {
		t.Error("Expected out of bounds name to be rejected")
	}
}

func TestNameSampleEqual(t *testing.T) {
	a, _ := NewNameSample([]string{"a", "b"}, []Span{{0, 1, "x"}}, false)
	b, _ := NewNameSample([]string{"a", "b"}, []Span{{0, 1, "x"}}, true)
	c, _ := NewNameSample([]string{"a", "b"}, []Span{{0, 2, "x"}}, false)
	if !a.Equal(b) {
		t.Error("Expected samples to be equal")
	}
	if a.Equal(c) {
		t.Error("Expected samples with different names to differ")
	}
}

func TestPhrasesAsSpans(t *testing.T) {
	preds := []string{"B-NP", "I-NP", "B-VP", "O", "B-NP", "I-NP", "I-PP"}
	spans := PhrasesAsSpans(preds)
	expected := []Span{{0, 2, "NP"}, {2, 3, "VP"}, {4, 6, "NP"}, {6, 7, "PP"}}
	if len(spans) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, spans)
	}
	for i := range expected {
		if spans[i] != expected[i] {
			t.Errorf("Expected %v at %d, got %v", expected[i], i, spans[i])
		}
	}
}
