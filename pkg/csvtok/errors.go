package csvtok

import "fmt"

// Sentinel errors for caller-ordering mistakes; neither carries extra
// position information beyond what the caller already knows (it just
// called NextRecord or NextColumn). Use errors.Is to test for these.
var (
	// ErrRecordHasUnexpectedTrailingColumn is returned by NextRecord when
	// the caller has not drained the current record (HasNextColumn is
	// still true) before advancing.
	ErrRecordHasUnexpectedTrailingColumn = fmt.Errorf("csvtok: next_record called before current record was fully read")

	// ErrRecordDoesNotHaveExpectedColumn is returned by NextColumn when
	// called after HasNextColumn has already returned false.
	ErrRecordDoesNotHaveExpectedColumn = fmt.Errorf("csvtok: next_column called but the current record has no more columns")
)

// QuotationErrorKind identifies which InvalidCsvQuotation leaf a
// QuotationError represents.
type QuotationErrorKind int

const (
	// EndOfFileInQuotedField: the upstream source was exhausted while the
	// state machine still needed more physical lines to close a quoted
	// field.
	EndOfFileInQuotedField QuotationErrorKind = iota

	// InvalidCharacterAfterQuote: a non-whitespace, non-delimiter,
	// non-end-of-line character followed a closing quote.
	InvalidCharacterAfterQuote

	// QuotedFieldLengthLimitExceeded: the quoted field's scanned or
	// decoded length exceeded Config.MaxQuotedFieldLength.
	QuotedFieldLengthLimitExceeded
)

func (k QuotationErrorKind) String() string {
	switch k {
	case EndOfFileInQuotedField:
		return "EndOfFileInQuotedField"
	case InvalidCharacterAfterQuote:
		return "InvalidCharacterAfterQuote"
	case QuotedFieldLengthLimitExceeded:
		return "QuotedFieldLengthLimitExceeded"
	default:
		return fmt.Sprintf("QuotationErrorKind(%d)", int(k))
	}
}

// QuotationError reports a failure specific to malformed quoted-field
// content, carrying whatever position/payload information its Kind needs.
type QuotationError struct {
	Kind QuotationErrorKind

	// Line is the physical line number (LineFeeder.LineNumber) at which
	// the error was detected. For EndOfFileInQuotedField it is one past
	// the last line read, the line that was expected but never arrived.
	Line int64

	// Char and Quote are populated for InvalidCharacterAfterQuote: the
	// offending character and the configured quote character.
	Char  byte
	Quote byte

	// Limit is populated for QuotedFieldLengthLimitExceeded.
	Limit int
}

func (e *QuotationError) Error() string {
	switch e.Kind {
	case InvalidCharacterAfterQuote:
		return fmt.Sprintf("csvtok: line %d: invalid character %q after closing quote %q", e.Line, e.Char, e.Quote)
	case QuotedFieldLengthLimitExceeded:
		return fmt.Sprintf("csvtok: line %d: quoted field exceeds maximum length of %d", e.Line, e.Limit)
	case EndOfFileInQuotedField:
		return fmt.Sprintf("csvtok: line %d: end of input while inside a quoted field", e.Line)
	default:
		return fmt.Sprintf("csvtok: line %d: invalid csv quotation (%s)", e.Line, e.Kind)
	}
}

// IsInvalidCsvQuotation reports whether err is a *QuotationError: any of the
// failure kinds specific to malformed quoted-field content.
func IsInvalidCsvQuotation(err error) bool {
	_, ok := err.(*QuotationError)
	return ok
}

