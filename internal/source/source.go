package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// LineCol is a human-readable position in the source text.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes from line start
}

// Source holds one rule's text together with a line index so spans can be
// resolved to line/column pairs when a diagnostic is rendered.
type Source struct {
	Path    string // "" for virtual sources (tests, demo strings)
	Content []byte
	lineIdx []uint32 // byte offset of the start of each line
}

// New builds a Source from in-memory text. The text is normalized the same
// way Load normalizes file content.
func New(path string, content []byte) *Source {
	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)
	content = norm.NFC.Bytes(content)
	return &Source{
		Path:    path,
		Content: content,
		lineIdx: buildLineIndex(content),
	}
}

// Load reads a rule file from disk, normalizes BOM/CRLF and Unicode form,
// and builds the line index.
func Load(path string) (*Source, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(path, content), nil
}

// Len returns the content length in bytes.
func (src *Source) Len() uint32 {
	n, err := safecast.Conv[uint32](len(src.Content))
	if err != nil {
		panic(fmt.Errorf("source length overflow: %w", err))
	}
	return n
}

// Resolve maps a span to its start and end line/column positions.
func (src *Source) Resolve(span Span) (start, end LineCol) {
	return src.Position(span.Start), src.Position(span.End)
}

// Position maps a byte offset to a line/column position. Offsets past the
// end of the content resolve to one past the last column of the last line.
func (src *Source) Position(offset uint32) LineCol {
	if n := src.Len(); offset > n {
		offset = n
	}
	// Binary search for the last line start <= offset.
	lo, hi := 0, len(src.lineIdx)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if src.lineIdx[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	lineNum, err := safecast.Conv[uint32](lo + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{
		Line: lineNum,
		Col:  offset - src.lineIdx[lo] + 1,
	}
}

// Line returns the text of a 1-based line number without its trailing newline.
func (src *Source) Line(line uint32) string {
	if line == 0 || int(line) > len(src.lineIdx) {
		return ""
	}
	start := src.lineIdx[line-1]
	end := src.Len()
	if int(line) < len(src.lineIdx) {
		end = src.lineIdx[line] - 1 // drop the '\n'
	}
	return string(src.Content[start:end])
}
