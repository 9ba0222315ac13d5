// Package amber implements the multi-dialect parser front end for the
// Amber shell-scripting language: lexer, per-dialect expression/statement
// grammars, error recovery, and the file-path interner.
package amber

// Span is a half-open [Start, End) byte range into the source that produced
// a node. Spans are the only identity a node has — there are no node IDs.
type Span struct {
	Start int
	End   int
}

// Join returns the smallest span covering both a and b.
func Join(a, b Span) Span {
	start := a.Start
	if b.Start < start {
		start = b.Start
	}

	end := a.End
	if b.End > end {
		end = b.End
	}

	return Span{Start: start, End: end}
}

// Contains reports whether offset falls within the half-open span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Spanned pairs a value with the span of source it was built from.
type Spanned[T any] struct {
	Node T
	Span Span
}

// NewSpanned constructs a Spanned value.
func NewSpanned[T any](node T, span Span) Spanned[T] {
	return Spanned[T]{Node: node, Span: span}
}
