package lsp

import (
	"sort"
	"unicode/utf8"

	"go.lsp.dev/protocol"
)

// LineIndex maps byte offsets into a source string to LSP line/UTF-16
// character positions and back. amber.Span only ever carries byte offsets
// (spec.md §3), so this is the one place in the module that deals in LSP's
// own UTF-16 position encoding — generalized from this module's teacher's
// spanToRange (lsp/util.go), which only had to flip 1-based line/column to
// 0-based since its own lexer already tracked line/column.
type LineIndex struct {
	source     string
	lineStarts []int // byte offset of the first byte of each line
}

// NewLineIndex builds a LineIndex over source.
func NewLineIndex(source string) *LineIndex {
	starts := []int{0}

	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &LineIndex{source: source, lineStarts: starts}
}

// OffsetToPosition converts a byte offset to an LSP Position.
func (li *LineIndex) OffsetToPosition(offset int) protocol.Position {
	if offset < 0 {
		offset = 0
	}

	if offset > len(li.source) {
		offset = len(li.source)
	}

	line := sort.Search(len(li.lineStarts), func(i int) bool {
		return li.lineStarts[i] > offset
	}) - 1

	lineStart := li.lineStarts[line]
	character := utf16Len(li.source[lineStart:offset])

	return protocol.Position{Line: uint32(line), Character: uint32(character)} //nolint:gosec // source files are never line/char-count-overflowing huge
}

// PositionToOffset converts an LSP Position back to a byte offset.
func (li *LineIndex) PositionToOffset(pos protocol.Position) int {
	line := int(pos.Line)
	if line < 0 {
		line = 0
	}

	if line >= len(li.lineStarts) {
		return len(li.source)
	}

	lineStart := li.lineStarts[line]
	lineEnd := len(li.source)

	if line+1 < len(li.lineStarts) {
		lineEnd = li.lineStarts[line+1]
	}

	remaining := int(pos.Character)
	offset := lineStart

	for offset < lineEnd && remaining > 0 {
		r, size := utf8.DecodeRuneInString(li.source[offset:])

		units := 1
		if r > 0xFFFF {
			units = 2
		}

		offset += size
		remaining -= units
	}

	return offset
}

// utf16Len returns the number of UTF-16 code units s would encode to.
func utf16Len(s string) int {
	count := 0

	for _, r := range s {
		if r > 0xFFFF {
			count += 2
		} else {
			count++
		}
	}

	return count
}
