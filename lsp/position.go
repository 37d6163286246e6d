// Package lsp builds the document-sync side of the language server
// protocol: UTF-16 position conversion and the didOpen/didChange/didSave/
// didClose payloads. Transport is the shell's concern.
package lsp

import (
	"github.com/vellumtext/vellum/edit"
	"github.com/vellumtext/vellum/rope"
)

// Position is a protocol position: zero-based line and UTF-16 code unit
// offset within the line.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range is a half-open protocol range.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func utf16Len(r rune) uint32 {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// PositionOfChar converts a rope char index to a protocol position.
func PositionOfChar(text rope.Rope, char int) Position {
	line := text.CharToLine(char)
	start := text.LineToChar(line)
	var units uint32
	for _, r := range text.Slice(start, char).String() {
		units += utf16Len(r)
	}
	return Position{Line: uint32(line), Character: units}
}

// CharOfPosition converts a protocol position back to a char index,
// clamping past-the-end characters to the line end and past-the-end lines
// to the text end.
func CharOfPosition(text rope.Rope, pos Position) int {
	if int(pos.Line) >= text.LenLines() {
		return text.LenChars()
	}
	start, end := text.LineBounds(int(pos.Line))
	char := start
	var units uint32
	for _, r := range text.Slice(start, end).String() {
		// Past-the-end characters clamp to the content end, before the
		// line break.
		if r == '\n' || units >= pos.Character {
			break
		}
		units += utf16Len(r)
		char++
	}
	return char
}

// RangeOfChars converts a char range to a protocol range.
func RangeOfChars(text rope.Rope, from, to int) Range {
	return Range{Start: PositionOfChar(text, from), End: PositionOfChar(text, to)}
}

// ContentChanges maps a changeset to incremental didChange edits. Ranges
// are expressed against the pre-image text, in ascending order.
func ContentChanges(oldText rope.Rope, cs *edit.ChangeSet) []ContentChange {
	changes := cs.Changes()
	out := make([]ContentChange, 0, len(changes))
	for _, ch := range changes {
		r := RangeOfChars(oldText, ch.From, ch.To)
		out = append(out, ContentChange{Range: &r, Text: ch.Insert})
	}
	return out
}

// FullContentChange is the non-incremental fallback: one change replacing
// the whole document.
func FullContentChange(newText rope.Rope) []ContentChange {
	return []ContentChange{{Text: newText.String()}}
}
