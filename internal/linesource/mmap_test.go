package linesource

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMappedFileSourceSplitsLinesAndTrimsCR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a,b\r\nc,d\ne,f"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	src, err := NewMappedFileSource(path)
	if err != nil {
		t.Fatalf("NewMappedFileSource: %v", err)
	}
	defer src.Close()

	var got []string
	for {
		line, ok := src.Next()
		if !ok {
			break
		}
		got = append(got, line)
	}
	want := []string{"a,b", "c,d", "e,f"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMappedFileSourceEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	src, err := NewMappedFileSource(path)
	if err != nil {
		t.Fatalf("NewMappedFileSource: %v", err)
	}
	defer src.Close()

	if _, ok := src.Next(); ok {
		t.Fatal("Next() on empty file: want ok=false")
	}
}

func TestMappedFileSourceMissingFile(t *testing.T) {
	_, err := NewMappedFileSource(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	if err == nil {
		t.Fatal("NewMappedFileSource on missing file: want error")
	}
}
