package csvtok

import (
	"testing"

	"github.com/shapestone/csvtok/internal/linesource"
)

// FuzzNextColumnNeverPanics feeds arbitrary single-line input through the
// default-configured tokenizer. No input should make the state machine
// panic; CharCursor's IllegalStateError is the only sanctioned panic, and
// it should only ever fire from a genuine caller-ordering bug, never from
// input content.
func FuzzNextColumnNeverPanics(f *testing.F) {
	seeds := []string{
		"a,b,c",
		`"a","b,c","d""e"`,
		`"unterminated`,
		`"abc"x,y`,
		"  a ,  b  ",
		"#comment",
		"",
		`"a"""`,
		"a,,b,",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, line string) {
		tok, err := NewBuilder().Build(linesource.NewSliceSource([]string{line}))
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		ok, err := tok.NextRecord(false)
		if !ok || err != nil {
			return
		}
		for tok.HasNextColumn() {
			if _, err := tok.NextColumn(); err != nil {
				return
			}
		}
	})
}

// FuzzNextColumnOrNullNeverPanics exercises the null_string-configured path
// of NextColumnOrNull with arbitrary input.
func FuzzNextColumnOrNullNeverPanics(f *testing.F) {
	f.Add("a,b,NULL,")
	f.Add(`"",x`)

	f.Fuzz(func(t *testing.T, line string) {
		tok, err := NewBuilder().NullString("NULL").Build(linesource.NewSliceSource([]string{line}))
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		ok, err := tok.NextRecord(false)
		if !ok || err != nil {
			return
		}
		for tok.HasNextColumn() {
			col, err := tok.NextColumnOrNull()
			if err != nil {
				return
			}
			if col == nil {
				continue
			}
			if len(*col) > 1<<20 {
				t.Fatalf("implausibly large column from line %q", line)
			}
		}
	})
}
