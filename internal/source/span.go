package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) in the rule source text.
type Span struct {
	Start uint32
	End   uint32
}

// NewSpan builds a span from a start and end byte offset.
func NewSpan(start, end uint32) Span {
	return Span{Start: start, End: end}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover extends the span to include other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Spanned wraps a value together with the span it originated from.
type Spanned[T any] struct {
	Span  Span
	Inner T
}

// At wraps a value with a span.
func At[T any](span Span, inner T) Spanned[T] {
	return Spanned[T]{Span: span, Inner: inner}
}
