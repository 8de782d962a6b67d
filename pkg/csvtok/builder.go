package csvtok

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/shapestone/csvtok/internal/linefeed"
)

// Builder stores configuration and validates it at Build time via a
// chained-setter API.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder seeded with the package defaults.
func NewBuilder() *Builder {
	return &Builder{cfg: defaultConfig()}
}

// Delimiter sets the field delimiter. s must be non-empty; its first byte
// is the primary delimiter character, and any remaining suffix must also
// match immediately after it for a delimiter boundary to be recognized.
func (b *Builder) Delimiter(s string) *Builder {
	b.cfg.Delimiter = s
	return b
}

// Quote sets the quote character.
func (b *Builder) Quote(r rune) *Builder {
	b.cfg.Quote = r
	return b
}

// DisableQuoting turns off quote handling entirely.
func (b *Builder) DisableQuoting() *Builder {
	b.cfg.Quote = disabled
	return b
}

// Escape sets the escape character.
func (b *Builder) Escape(r rune) *Builder {
	b.cfg.Escape = r
	return b
}

// DisableEscaping turns off escape-character handling.
func (b *Builder) DisableEscaping() *Builder {
	b.cfg.Escape = disabled
	return b
}

// Newline sets the string inserted between physical lines when
// reassembling a multi-line quoted field. Must be "\r\n", "\r", or "\n".
func (b *Builder) Newline(s string) *Builder {
	b.cfg.Newline = s
	return b
}

// TrimIfNotQuoted enables or disables stripping leading/trailing ASCII
// spaces from unquoted fields.
func (b *Builder) TrimIfNotQuoted(trim bool) *Builder {
	b.cfg.TrimIfNotQuoted = trim
	return b
}

// AcceptStrayQuotesAssumingNoDelimitersInFields switches the stray-quote
// policy from the RFC 4180-only default to the lenient policy: a bare
// quote inside a quoted field is tolerated as literal data unless it is
// immediately followed by a delimiter or end of line.
func (b *Builder) AcceptStrayQuotesAssumingNoDelimitersInFields() *Builder {
	b.cfg.QuotesInQuotedFields = AcceptStrayQuotesAssumingNoDelimitersInFields
	return b
}

// MaxQuotedFieldLength bounds a single quoted field's decoded length.
func (b *Builder) MaxQuotedFieldLength(n int) *Builder {
	b.cfg.MaxQuotedFieldLength = n
	return b
}

// CommentLineMarker sets the prefix that marks a whole physical line as a
// comment to be skipped.
func (b *Builder) CommentLineMarker(marker string) *Builder {
	b.cfg.CommentLineMarker = marker
	return b
}

// NullString configures the sentinel raw value that NextColumnOrNull maps
// to nil.
func (b *Builder) NullString(s string) *Builder {
	b.cfg.NullString = s
	b.cfg.HasNullString = true
	return b
}

// Logger sets the logger that receives Debug-level trace events (line
// pulls, pushback, SkipCurrentLine recovery; never Info/Warn/Error, since
// these are trace detail, not application-level events). Pass nil
// (the default) to disable tracing.
func (b *Builder) Logger(logger logrus.FieldLogger) *Builder {
	b.cfg.Logger = logger
	return b
}

// Build validates the accumulated configuration and constructs a
// Tokenizer bound to src. It rejects a nil src, an empty Delimiter, a
// Newline other than "\r\n", "\r" or "\n", a non-positive
// MaxQuotedFieldLength, and a Quote or Escape equal to the Delimiter's
// primary character. It also rejects TrimIfNotQuoted together with the
// stray-quotes policy, since accepting both would make the delimiter-vs-quote tie-break
// ambiguous (a stray quote following trimmed leading spaces could be
// mistaken for the start of a quoted field or for literal data, depending
// on trim state, in a way the state machine cannot resolve consistently).
func (b *Builder) Build(src linefeed.Source) (*Tokenizer, error) {
	cfg := b.cfg

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("csvtok: Build requires a non-nil line source")
	}

	return newTokenizer(cfg, src), nil
}

func (c Config) validate() error {
	if len(c.Delimiter) == 0 {
		return fmt.Errorf("csvtok: invalid Delimiter: must be non-empty")
	}
	switch c.Newline {
	case "\r\n", "\r", "\n":
	default:
		return fmt.Errorf("csvtok: invalid Newline: must be one of \\r\\n, \\r, \\n")
	}
	if c.MaxQuotedFieldLength <= 0 {
		return fmt.Errorf("csvtok: invalid MaxQuotedFieldLength: must be positive")
	}
	if c.TrimIfNotQuoted && c.QuotesInQuotedFields == AcceptStrayQuotesAssumingNoDelimitersInFields {
		return fmt.Errorf("csvtok: invalid configuration: TrimIfNotQuoted is incompatible with AcceptStrayQuotesAssumingNoDelimitersInFields")
	}
	if c.quoteEnabled() && byte(c.Quote) == c.delimiterChar() {
		return fmt.Errorf("csvtok: invalid configuration: Quote must not equal Delimiter's primary character")
	}
	if c.escapeEnabled() && byte(c.Escape) == c.delimiterChar() {
		return fmt.Errorf("csvtok: invalid configuration: Escape must not equal Delimiter's primary character")
	}
	return nil
}
