package csvtok

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shapestone/csvtok/internal/cursor"
	"github.com/shapestone/csvtok/internal/linefeed"
)

// fieldState is one of the six states of the field-extraction automaton:
// scanning before a value starts, trimming leading space, scanning an
// unquoted value, trimming trailing space (or resuming the value if more
// non-space content follows), scanning inside a quoted value, and scanning
// the trailing whitespace after a closing quote.
type fieldState int

const (
	stateBegin fieldState = iota
	stateFirstTrim
	stateValue
	stateLastTrimOrValue
	stateQuotedValue
	stateAfterQuotedValue
)

// Tokenizer is the streaming CSV tokenizer state machine: it owns a
// CharCursor and a LineFeeder and exposes the record/column pull contract.
// A Tokenizer is not safe for concurrent use; see the package doc for the
// recommended one-Tokenizer-per-goroutine pattern.
type Tokenizer struct {
	cfg    Config
	feeder *linefeed.LineFeeder
	cur    cursor.CharCursor

	hasColumn        bool // record_state == NOT_END
	quotedValueLines []string
	wasQuoted        bool

	id     string
	logger logrus.FieldLogger
}

func newTokenizer(cfg Config, src linefeed.Source) *Tokenizer {
	logger := cfg.Logger
	id := uuid.NewString()
	var feederLogger logrus.FieldLogger
	if logger != nil {
		feederLogger = logger.WithField("tokenizer_id", id)
	}
	t := &Tokenizer{
		cfg:    cfg,
		feeder: linefeed.New(src, cfg.CommentLineMarker, feederLogger),
		id:     id,
		logger: logger,
	}
	return t
}

func (t *Tokenizer) trace() *logrus.Entry {
	if t.logger == nil {
		return nil
	}
	return t.logger.WithField("tokenizer_id", t.id)
}

// CurrentLineNumber returns the 1-based physical line number last touched.
func (t *Tokenizer) CurrentLineNumber() int64 {
	return t.feeder.LineNumber()
}

// SkipHeaderLine unconditionally consumes and discards one upstream line,
// with no state-machine interpretation. It returns false once the
// upstream source (and pushback) are exhausted.
func (t *Tokenizer) SkipHeaderLine() bool {
	return t.feeder.NextLine(false)
}

// SkipCurrentLine abandons the current record. If the tokenizer was in
// the middle of a multi-line quoted field, the first physical line
// absorbed into that field becomes the returned "skipped line", and every
// subsequent absorbed line plus the current line are pushed back for
// re-delivery by a later NextRecord. Otherwise the current physical line
// itself is the skipped line, and nothing is pushed back. Either way,
// HasNextColumn becomes false. SkipCurrentLine returns ok=false only when
// there is no current line to abandon, i.e. no line has been read yet.
// After the source is exhausted it still returns the last line read.
func (t *Tokenizer) SkipCurrentLine() (line string, ok bool) {
	defer func() { t.hasColumn = false }()

	if tr := t.trace(); tr != nil {
		tr.WithField("absorbed_lines", len(t.quotedValueLines)).Debug("tokenizer: skip_current_line")
	}

	if len(t.quotedValueLines) > 0 {
		skipped := t.quotedValueLines[0]
		rest := append([]string(nil), t.quotedValueLines[1:]...)
		current := ""
		if t.feeder.Line() != nil {
			current = *t.feeder.Line()
		}
		t.feeder.PushBack(rest, current)
		t.quotedValueLines = nil
		return skipped, true
	}

	if t.feeder.Line() == nil {
		return "", false
	}
	return *t.feeder.Line(), true
}

// NextRecord advances to the next record. It fails with
// ErrRecordHasUnexpectedTrailingColumn if the current record still has
// unread columns (HasNextColumn is true). skipEmpty controls whether
// blank lines and comment lines are skipped while searching for the next
// record's line. NextRecord returns ok=false, with a nil error, once the
// upstream source is exhausted.
func (t *Tokenizer) NextRecord(skipEmpty bool) (ok bool, err error) {
	if t.hasColumn {
		return false, ErrRecordHasUnexpectedTrailingColumn
	}
	if !t.feeder.NextLine(skipEmpty) {
		if tr := t.trace(); tr != nil {
			tr.Debug("tokenizer: next_record found upstream exhausted")
		}
		return false, nil
	}
	t.cur.SetLine(t.feeder.Line(), 0)
	t.hasColumn = true
	if tr := t.trace(); tr != nil {
		tr.WithField("line_number", t.feeder.LineNumber()).Debug("tokenizer: next_record started")
	}
	return true, nil
}

// HasNextColumn reports whether the current record has at least one more
// column to read.
func (t *Tokenizer) HasNextColumn() bool {
	return t.hasColumn
}

// WasQuotedColumn reports whether the field most recently returned by
// NextColumn originated from a quoted form.
func (t *Tokenizer) WasQuotedColumn() bool {
	return t.wasQuoted
}

// NextColumn extracts the next field as a raw string. It fails with
// ErrRecordDoesNotHaveExpectedColumn if HasNextColumn is false.
func (t *Tokenizer) NextColumn() (string, error) {
	if !t.hasColumn {
		return "", ErrRecordDoesNotHaveExpectedColumn
	}
	return t.nextColumnRaw()
}

// NextColumnOrNull wraps NextColumn. When Config.NullString is configured
// (HasNullString), it returns nil exactly when the raw field equals
// NullString. When it is not configured, it returns nil for an empty
// unquoted field and a pointer to "" for an empty quoted field, since an
// explicitly empty-quoted field ("") and a bare, absent field read
// differently to a caller mapping to a nullable column.
func (t *Tokenizer) NextColumnOrNull() (*string, error) {
	raw, err := t.NextColumn()
	if err != nil {
		return nil, err
	}
	if t.cfg.HasNullString {
		if raw == t.cfg.NullString {
			return nil, nil
		}
		return &raw, nil
	}
	if raw == "" && !t.wasQuoted {
		return nil, nil
	}
	return &raw, nil
}

// isDelimiterBoundary reports whether c, the byte just consumed via
// cur.Next(), starts a delimiter boundary. When the delimiter has a
// following suffix and it matches at the cursor's current position (i.e.
// immediately after c), the cursor is advanced past that suffix as a side
// effect.
func (t *Tokenizer) isDelimiterBoundary(c byte) bool {
	if c != t.cfg.delimiterChar() {
		return false
	}
	following := t.cfg.delimiterFollowing()
	if following == "" {
		return true
	}
	if t.cur.HasPrefixAt(0, following) {
		t.cur.Advance(len(following))
		return true
	}
	return false
}

// looksLikeDelimiterOrEOLAt reports, without consuming, whether a
// delimiter boundary or end-of-line starts offset bytes past the
// cursor's current position.
func (t *Tokenizer) looksLikeDelimiterOrEOLAt(offset int) bool {
	c := t.cur.PeekAt(offset)
	if c == cursor.EOL {
		return true
	}
	if c != t.cfg.delimiterChar() {
		return false
	}
	following := t.cfg.delimiterFollowing()
	if following == "" {
		return true
	}
	return t.cur.HasPrefixAt(offset+1, following)
}

// nextColumnRaw is the field-extraction state machine: it scans bytes from
// the bound CharCursor, pulling further physical lines through the
// LineFeeder as needed to close a quoted value, until it can return a
// complete field or a quotation error.
func (t *Tokenizer) nextColumnRaw() (string, error) {
	t.wasQuoted = false
	t.quotedValueLines = t.quotedValueLines[:0]

	line := t.feeder.Line()
	valueStart := t.cur.Pos()
	valueEnd := valueStart
	var quotedBuf []byte
	releaseQuotedBuf := func() {
		if quotedBuf != nil {
			putQuotedBuffer(quotedBuf)
			quotedBuf = nil
		}
	}

	state := stateBegin
	for {
		switch state {
		case stateBegin:
			c := t.cur.Next()
			switch {
			case t.isDelimiterBoundary(c):
				return "", nil
			case c == cursor.EOL:
				t.hasColumn = false
				return "", nil
			case c == ' ' && t.cfg.TrimIfNotQuoted:
				state = stateFirstTrim
			case t.cfg.quoteEnabled() && c == byte(t.cfg.Quote):
				t.wasQuoted = true
				quotedBuf = getQuotedBuffer()
				valueStart = t.cur.Pos()
				state = stateQuotedValue
			default:
				state = stateValue
			}

		case stateFirstTrim:
			c := t.cur.Next()
			switch {
			case t.isDelimiterBoundary(c):
				return "", nil
			case c == cursor.EOL:
				t.hasColumn = false
				return "", nil
			case c == ' ':
				// remain
			case t.cfg.quoteEnabled() && c == byte(t.cfg.Quote):
				t.wasQuoted = true
				quotedBuf = getQuotedBuffer()
				valueStart = t.cur.Pos()
				state = stateQuotedValue
			default:
				valueStart = t.cur.Pos() - 1
				state = stateValue
			}

		case stateValue:
			c := t.cur.Next()
			delimCharPos := t.cur.Pos() - 1
			switch {
			case t.isDelimiterBoundary(c):
				return (*line)[valueStart:delimCharPos], nil
			case c == cursor.EOL:
				t.hasColumn = false
				return (*line)[valueStart:t.cur.Pos()], nil
			case c == ' ' && t.cfg.TrimIfNotQuoted:
				valueEnd = delimCharPos
				state = stateLastTrimOrValue
			default:
				// remain
			}

		case stateLastTrimOrValue:
			c := t.cur.Next()
			switch {
			case t.isDelimiterBoundary(c):
				return (*line)[valueStart:valueEnd], nil
			case c == cursor.EOL:
				t.hasColumn = false
				return (*line)[valueStart:valueEnd], nil
			case c == ' ':
				// remain
			default:
				state = stateValue
			}

		case stateQuotedValue:
			c := t.cur.Next()

			if c == cursor.EOL {
				quotedBuf = append(quotedBuf, (*line)[valueStart:t.cur.Pos()]...)
				quotedBuf = append(quotedBuf, t.cfg.Newline...)
				absorbedLine := *line
				if !t.feeder.NextLine(false) {
					// The line we were scanning stays bound as the
					// feeder's current line (NextLine leaves it
					// unchanged on failure), so it must not also be
					// recorded here; SkipCurrentLine would otherwise
					// push it back twice.
					lineNo := t.feeder.LineNumber() + 1
					releaseQuotedBuf()
					if tr := t.trace(); tr != nil {
						tr.WithField("line_number", lineNo).Debug("tokenizer: end of input while inside quoted field")
					}
					return "", &QuotationError{Kind: EndOfFileInQuotedField, Line: lineNo}
				}
				t.quotedValueLines = append(t.quotedValueLines, absorbedLine)
				t.cur.SetLine(t.feeder.Line(), 0)
				line = t.feeder.Line()
				valueStart = 0
				continue
			}

			if t.cfg.quoteEnabled() && c == byte(t.cfg.Quote) {
				nextIsQuote := t.cur.Peek() == byte(t.cfg.Quote)
				next2IsBoundary := t.looksLikeDelimiterOrEOLAt(1)
				next1IsBoundary := t.looksLikeDelimiterOrEOLAt(0)

				switch {
				case nextIsQuote && (t.cfg.QuotesInQuotedFields == RFC4180Only || !next2IsBoundary):
					// RFC 4180 escaped ("") quote.
					quotedBuf = append(quotedBuf, (*line)[valueStart:t.cur.Pos()]...)
					t.cur.Next() // consume the paired quote
					valueStart = t.cur.Pos()

				case t.cfg.QuotesInQuotedFields == AcceptStrayQuotesAssumingNoDelimitersInFields && !next1IsBoundary:
					// Stray quote, treated as literal data.
					if err := t.checkQuotedSizeGuard(valueStart, len(quotedBuf)); err != nil {
						releaseQuotedBuf()
						return "", err
					}

				default:
					// Closing quote.
					quotedBuf = append(quotedBuf, (*line)[valueStart:t.cur.Pos()-1]...)
					value := string(quotedBuf)
					releaseQuotedBuf()
					return t.afterQuotedValue(value)
				}
				continue
			}

			if t.cfg.escapeEnabled() && c == byte(t.cfg.Escape) {
				peeked := t.cur.Peek()
				if (t.cfg.quoteEnabled() && peeked == byte(t.cfg.Quote)) || peeked == byte(t.cfg.Escape) {
					quotedBuf = append(quotedBuf, (*line)[valueStart:t.cur.Pos()-1]...)
					quotedBuf = append(quotedBuf, peeked)
					t.cur.Next() // consume the escaped character
					valueStart = t.cur.Pos()
					continue
				}
				// No escapable character follows; the escape byte is
				// ordinary data, handled by the size guard below.
			}

			if err := t.checkQuotedSizeGuard(valueStart, len(quotedBuf)); err != nil {
				releaseQuotedBuf()
				return "", err
			}

		case stateAfterQuotedValue:
			// Unreachable: afterQuotedValue runs its own loop and returns
			// directly instead of looping back through this switch.
			panic("csvtok: unreachable state")
		}
	}
}

// afterQuotedValue implements the AFTER_QUOTED_VALUE state: trailing
// whitespace after a closing quote is accepted silently; anything else
// but the delimiter or end of line is an error.
func (t *Tokenizer) afterQuotedValue(value string) (string, error) {
	for {
		c := t.cur.Next()
		switch {
		case t.isDelimiterBoundary(c):
			return value, nil
		case c == cursor.EOL:
			t.hasColumn = false
			return value, nil
		case c == ' ':
			// remain
		default:
			return "", &QuotationError{
				Kind:  InvalidCharacterAfterQuote,
				Line:  t.feeder.LineNumber(),
				Char:  c,
				Quote: byte(t.cfg.Quote),
			}
		}
	}
}

func (t *Tokenizer) checkQuotedSizeGuard(valueStart, quotedBufLen int) error {
	if (t.cur.Pos()-valueStart)+quotedBufLen > t.cfg.MaxQuotedFieldLength {
		return &QuotationError{
			Kind:  QuotedFieldLengthLimitExceeded,
			Line:  t.feeder.LineNumber(),
			Limit: t.cfg.MaxQuotedFieldLength,
		}
	}
	return nil
}
