package lang

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"ndca/internal/source"
)

// SourceError is an Error resolved against the rule text it came from,
// ready for display: the offending source line plus a caret underline.
type SourceError struct {
	Line     string // source line containing the span start; "" if no span
	HasLine  bool
	Pad      int // display width of the line prefix before the span
	Carets   int // display width of the underlined part, >= 1 when HasLine
	Message  string
	Code     Code
	RulePath string
	Pos      source.LineCol
}

// WithSource resolves the error's span against the original rule text.
// Errors without a span render message-only.
func (e *Error) WithSource(src *source.Source) *SourceError {
	out := &SourceError{
		Message: e.Message,
		Code:    e.Code,
	}
	if !e.HasSpan || src == nil {
		return out
	}

	start, end := src.Resolve(e.Span)
	line := src.Line(start.Line)

	// A span crossing lines collapses to a single column on its first line.
	endCol := end.Col
	if end.Line != start.Line || endCol <= start.Col {
		endCol = start.Col + 1
	}

	startByte := int(start.Col) - 1
	endByte := int(endCol) - 1
	if startByte > len(line) {
		startByte = len(line)
	}
	if endByte > len(line) {
		endByte = len(line)
	}

	out.HasLine = true
	out.Line = line
	out.Pad = runewidth.StringWidth(line[:startByte])
	out.Carets = runewidth.StringWidth(line[startByte:endByte])
	if out.Carets < 1 {
		out.Carets = 1
	}
	out.RulePath = src.Path
	out.Pos = start
	return out
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return e.String()
}

// String renders the source line, the caret underline, and the message.
func (e *SourceError) String() string {
	if !e.HasLine {
		return e.Message
	}
	var sb strings.Builder
	sb.WriteString(e.Line)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", e.Pad))
	sb.WriteString(strings.Repeat("^", e.Carets))
	sb.WriteString("   ")
	sb.WriteString(e.Message)
	return sb.String()
}
