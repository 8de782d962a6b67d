// Package linefeed pulls physical lines for the tokenizer from an upstream
// lazy line sequence, or from an internal pushback stack used to replay
// lines that were consumed speculatively while assembling a multi-line
// quoted field. It also implements blank-line and comment-line skipping
// and tracks the 1-based physical line number.
package linefeed

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Source is a finite, lazy sequence of physical lines with their trailing
// line terminators already stripped. The upstream line decoder's own
// concerns, character encoding and byte-level framing, are entirely
// outside this package.
type Source interface {
	// Next returns the next available line, or ok=false once the source
	// is exhausted.
	Next() (line string, ok bool)
}

// LineFeeder owns the current line, the pushback stack, and the physical
// line counter on behalf of a Tokenizer. It is not safe for concurrent use.
type LineFeeder struct {
	src           Source
	unread        []string // LIFO pushback stack
	commentMarker string
	line          *string
	lineNumber    int64
	logger        logrus.FieldLogger
}

// New creates a LineFeeder pulling from src. commentMarker, when non-empty,
// marks a whole line as a comment to be skipped by NextLine(true). logger
// may be nil, in which case trace events are dropped silently.
func New(src Source, commentMarker string, logger logrus.FieldLogger) *LineFeeder {
	return &LineFeeder{
		src:           src,
		commentMarker: commentMarker,
		logger:        logger,
	}
}

// Line returns the physical line currently bound, or nil if NextLine has
// never succeeded. Once the source is exhausted, Line keeps returning the
// last line that was bound.
func (f *LineFeeder) Line() *string {
	return f.line
}

// LineNumber returns the 1-based count of physical lines consumed so far,
// including lines absorbed into an in-progress quoted field.
func (f *LineFeeder) LineNumber() int64 {
	return f.lineNumber
}

// NextLine sets the current line to the next physical line, resets the
// column position to 0 (the caller re-reads it via Line()), and increments
// LineNumber. Pushback is drained (LIFO) before pulling from the upstream
// source. When skipBlankAndComment is true, empty lines and lines starting
// with the configured comment marker are skipped transparently. NextLine
// returns false, leaving the current line unchanged, once no line is
// available from either pushback or the upstream source.
func (f *LineFeeder) NextLine(skipBlankAndComment bool) bool {
	for {
		line, ok := f.pull()
		if !ok {
			return false
		}
		f.lineNumber++
		if f.logger != nil {
			f.logger.WithFields(logrus.Fields{
				"line_number": f.lineNumber,
				"length":      len(line),
			}).Debug("linefeed: pulled line")
		}
		if skipBlankAndComment && f.shouldSkip(line) {
			continue
		}
		f.line = &line
		return true
	}
}

func (f *LineFeeder) pull() (string, bool) {
	if n := len(f.unread); n > 0 {
		line := f.unread[n-1]
		f.unread = f.unread[:n-1]
		return line, true
	}
	return f.src.Next()
}

func (f *LineFeeder) shouldSkip(line string) bool {
	if line == "" {
		return true
	}
	if f.commentMarker != "" && strings.HasPrefix(line, f.commentMarker) {
		return true
	}
	return false
}

// PushBack restores lines for later re-delivery, in the order given:
// lines[0] will be the next line NextLine returns, then lines[1], and so
// on, then finally currentLine. It rewinds LineNumber by the total count
// pushed back, keeping the counter consistent with the lines it will
// re-deliver. PushBack is used only by Tokenizer.SkipCurrentLine.
func (f *LineFeeder) PushBack(lines []string, currentLine string) {
	all := make([]string, 0, len(lines)+1)
	all = append(all, lines...)
	all = append(all, currentLine)

	// unread is a LIFO stack, so push in reverse order: the stack top
	// after this call must be all[0].
	for i := len(all) - 1; i >= 0; i-- {
		f.unread = append(f.unread, all[i])
	}
	f.lineNumber -= int64(len(all))
	if f.logger != nil {
		f.logger.WithFields(logrus.Fields{
			"pushed_back": len(all),
			"line_number": f.lineNumber,
		}).Debug("linefeed: pushed back lines")
	}
}
