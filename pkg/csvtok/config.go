// Package csvtok implements a streaming CSV tokenizer: a multi-state
// automaton that turns a lazy sequence of physical lines into a lazy
// sequence of records, handling quotes, escapes, embedded newlines,
// unquoted-field trimming, and error recovery.
//
// # Thread safety
//
// A Tokenizer is not safe for concurrent use: it is a single-threaded,
// cooperative state machine with no internal locking. Processing many CSV
// feeds concurrently means running one Tokenizer per goroutine, each bound
// to its own linefeed.Source, e.g.:
//
//	for _, path := range paths {
//	    go func(path string) {
//	        src, _ := linesource.NewMappedFileSource(path)
//	        defer src.Close()
//	        tok, _ := csvtok.NewBuilder().Build(src)
//	        for {
//	            ok, err := tok.NextRecord(true)
//	            ...
//	        }
//	    }(path)
//	}
package csvtok

import "github.com/sirupsen/logrus"

// QuotePolicy selects how a lone (non-doubled) quote character encountered
// inside a quoted field is handled.
type QuotePolicy int

const (
	// RFC4180Only requires every quote inside a quoted field to be part of
	// a doubled ("") escape pair; any other bare quote closes the field.
	RFC4180Only QuotePolicy = iota

	// AcceptStrayQuotesAssumingNoDelimitersInFields tolerates a bare quote
	// inside a quoted field as literal data, provided the field is known
	// never to contain the delimiter (hence the name): a quote is only
	// treated as closing the field when it is immediately followed by a
	// delimiter or end of line.
	AcceptStrayQuotesAssumingNoDelimitersInFields
)

// disabled is the sentinel for an unset Quote/Escape rune. It reuses the
// cursor package's EOL value (0), which cannot appear as a real input
// character because line sources never hand this tokenizer a literal NUL.
const disabled rune = 0

// DefaultMaxQuotedFieldLength is the default upper bound on the decoded
// length of a single quoted field, in bytes.
const DefaultMaxQuotedFieldLength = 131072

// Config holds the immutable, validated configuration for a Tokenizer.
// Build one via Builder rather than constructing Config directly, since
// Builder enforces the cross-field invariants below.
type Config struct {
	// Delimiter is the field separator. The first byte is the primary
	// delimiter character; any remaining suffix is the "delimiter
	// following" string that must also match, starting immediately after
	// the primary character, for a delimiter boundary to be recognized.
	Delimiter string

	// Quote is the quote character, or disabled (0) to turn off quoting
	// entirely.
	Quote rune

	// Escape is the escape character, or disabled (0). Ignored whenever
	// it equals Quote, since the quote-doubling rule takes priority.
	Escape rune

	// Newline is inserted between physical lines when reassembling a
	// multi-line quoted field. Must be "\r\n", "\r", or "\n".
	Newline string

	// TrimIfNotQuoted strips leading and trailing ASCII spaces from
	// unquoted fields. Incompatible with QuotesInQuotedFields ==
	// AcceptStrayQuotesAssumingNoDelimitersInFields (see Builder.Build).
	TrimIfNotQuoted bool

	// QuotesInQuotedFields selects the stray-quote handling policy.
	QuotesInQuotedFields QuotePolicy

	// MaxQuotedFieldLength bounds a single quoted field's decoded length.
	MaxQuotedFieldLength int

	// CommentLineMarker, when non-empty, marks a whole physical line as a
	// comment to be skipped rather than tokenized.
	CommentLineMarker string

	// NullString is the sentinel raw value that NextColumnOrNull maps to
	// nil. HasNullString distinguishes "configured as empty string" from
	// "not configured at all"; both are observably different.
	NullString    string
	HasNullString bool

	// Logger receives Debug-level trace events (line pulls, pushback,
	// SkipCurrentLine recovery). May be nil, in which case tracing is
	// silently disabled.
	Logger logrus.FieldLogger
}

func defaultConfig() Config {
	return Config{
		Delimiter:            ",",
		Quote:                '"',
		Escape:               '\\',
		Newline:              "\r\n",
		TrimIfNotQuoted:      false,
		QuotesInQuotedFields: RFC4180Only,
		MaxQuotedFieldLength: DefaultMaxQuotedFieldLength,
	}
}

func (c Config) quoteEnabled() bool {
	return c.Quote != disabled
}

func (c Config) escapeEnabled() bool {
	return c.Escape != disabled && c.Escape != c.Quote
}

// delimiterChar and delimiterFollowing split Delimiter into its primary
// character and the (possibly empty) suffix that must also match.
func (c Config) delimiterChar() byte {
	return c.Delimiter[0]
}

func (c Config) delimiterFollowing() string {
	return c.Delimiter[1:]
}
