package linesource

import (
	"strings"
	"testing"
)

func TestSliceSourceYieldsInOrderThenExhausts(t *testing.T) {
	s := NewSliceSource([]string{"a", "b"})

	for _, want := range []string{"a", "b"} {
		got, ok := s.Next()
		if !ok {
			t.Fatalf("Next(): want ok=true")
		}
		if got != want {
			t.Errorf("Next() = %q, want %q", got, want)
		}
	}
	if _, ok := s.Next(); ok {
		t.Fatal("Next() after exhaustion: want ok=false")
	}
}

func TestSliceSourceEmpty(t *testing.T) {
	s := NewSliceSource(nil)
	if _, ok := s.Next(); ok {
		t.Fatal("Next() on empty SliceSource: want ok=false")
	}
}

func TestReaderSourceSplitsOnNewlines(t *testing.T) {
	r := NewReaderSource(strings.NewReader("a\nb\nc"))
	var got []string
	for {
		line, ok := r.Next()
		if !ok {
			break
		}
		got = append(got, line)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReaderSourceEmptyInput(t *testing.T) {
	r := NewReaderSource(strings.NewReader(""))
	if _, ok := r.Next(); ok {
		t.Fatal("Next() on empty input: want ok=false")
	}
}
