package cursor

import "testing"

func TestNextAdvancesAndReturnsEOLPastEnd(t *testing.T) {
	line := "ab"
	var c CharCursor
	c.SetLine(&line, 0)

	if got := c.Next(); got != 'a' {
		t.Fatalf("Next() = %q, want 'a'", got)
	}
	if got := c.Next(); got != 'b' {
		t.Fatalf("Next() = %q, want 'b'", got)
	}
	if got := c.Next(); got != EOL {
		t.Fatalf("Next() past end = %q, want EOL", got)
	}
	if c.Pos() != 2 {
		t.Errorf("Pos() = %d, want 2 (EOL read must not advance)", c.Pos())
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	line := "xyz"
	var c CharCursor
	c.SetLine(&line, 1)

	if got := c.Peek(); got != 'y' {
		t.Fatalf("Peek() = %q, want 'y'", got)
	}
	if got := c.Peek(); got != 'y' {
		t.Fatalf("second Peek() = %q, want 'y' (no advance)", got)
	}
	if got := c.PeekNext(); got != 'z' {
		t.Fatalf("PeekNext() = %q, want 'z'", got)
	}
	if got := c.PeekAt(0); got != 'y' {
		t.Errorf("PeekAt(0) = %q, want 'y'", got)
	}
	if got := c.PeekAt(5); got != EOL {
		t.Errorf("PeekAt(5) = %q, want EOL", got)
	}
}

func TestHasPrefixAt(t *testing.T) {
	line := "a::b"
	var c CharCursor
	c.SetLine(&line, 0)

	if !c.HasPrefixAt(1, "::") {
		t.Error("HasPrefixAt(1, \"::\") = false, want true")
	}
	if c.HasPrefixAt(1, "::b:") {
		t.Error("HasPrefixAt(1, \"::b:\") = true, want false (past end)")
	}
	if c.HasPrefixAt(0, "b") {
		t.Error("HasPrefixAt(0, \"b\") = true, want false")
	}
}

func TestAdvanceClampsToLineLength(t *testing.T) {
	line := "abc"
	var c CharCursor
	c.SetLine(&line, 0)

	c.Advance(2)
	if c.Pos() != 2 {
		t.Fatalf("Pos() = %d, want 2", c.Pos())
	}
	c.Advance(10)
	if c.Pos() != len(line) {
		t.Fatalf("Pos() = %d, want %d (clamped)", c.Pos(), len(line))
	}
}

func TestOperationsPanicWithNoLineBound(t *testing.T) {
	var c CharCursor
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Next() on unbound cursor: want panic, got none")
		}
		if _, ok := r.(*IllegalStateError); !ok {
			t.Fatalf("panic value = %#v (%T), want *IllegalStateError", r, r)
		}
	}()
	c.Next()
}
