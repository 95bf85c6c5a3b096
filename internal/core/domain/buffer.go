package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Selection is a half-open range [Start, End) of rune offsets into a buffer.
// An empty selection is a caret.
type Selection struct {
	// Start is the offset of the first selected rune.
	Start int `json:"start"`

	// End is the offset one past the last selected rune.
	End int `json:"end"`
}

// Caret returns an empty selection at offset.
func Caret(offset int) Selection {
	return Selection{Start: offset, End: offset}
}

// IsEmpty returns true if the selection covers no text.
func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

// Len returns the number of selected runes.
func (s Selection) Len() int {
	return s.End - s.Start
}

// Buffer is the note being edited together with the current selection.
// Buffers are values; every transformation returns a new Buffer.
type Buffer struct {
	// Text is the entire note as plain markdown.
	Text string `json:"text"`

	// Selection is the host control's selection, in runes.
	Selection Selection `json:"selection"`
}

// NewBuffer returns a buffer holding text with the caret at the end,
// which is where a text control leaves it after its value is replaced.
func NewBuffer(text string) Buffer {
	return Buffer{Text: text, Selection: Caret(utf8.RuneCountInString(text))}
}

// RuneLen returns the length of the text in runes.
func (b Buffer) RuneLen() int {
	return utf8.RuneCountInString(b.Text)
}

// Validate reports whether 0 <= Start <= End <= RuneLen.
func (b Buffer) Validate() error {
	s := b.Selection
	if s.Start < 0 || s.Start > s.End || s.End > b.RuneLen() {
		return ErrInvalidSelection
	}
	return nil
}

// Normalize orders the selection and clamps it into the text.
func (b Buffer) Normalize() Buffer {
	n := b.RuneLen()
	start, end := clamp(b.Selection.Start, 0, n), clamp(b.Selection.End, 0, n)
	if start > end {
		start, end = end, start
	}
	b.Selection = Selection{Start: start, End: end}
	return b
}

// Selected returns the selected substring.
func (b Buffer) Selected() string {
	b = b.Normalize()
	runes := []rune(b.Text)
	return string(runes[b.Selection.Start:b.Selection.End])
}

// Counts returns word, character and line counts for the text.
func (b Buffer) Counts() Counts {
	return CountText(b.Text)
}

// Insert places before immediately ahead of the selection and after
// immediately behind it. The selected text is kept in between and stays
// selected at its shifted offset; with a caret, the caret lands right after
// before.
func Insert(b Buffer, before, after string) Buffer {
	b = b.Normalize()
	runes := []rune(b.Text)
	sel := b.Selection

	var sb strings.Builder
	sb.Grow(len(b.Text) + len(before) + len(after))
	sb.WriteString(string(runes[:sel.Start]))
	sb.WriteString(before)
	sb.WriteString(string(runes[sel.Start:sel.End]))
	sb.WriteString(after)
	sb.WriteString(string(runes[sel.End:]))

	start := sel.Start + utf8.RuneCountInString(before)
	return Buffer{
		Text:      sb.String(),
		Selection: Selection{Start: start, End: start + sel.Len()},
	}
}

// WrapBlock surrounds the selection with a styled block for label.
// The block markers sit on their own lines and the original text stays
// selected. An empty selection gets an empty block with placeholder content
// and the caret after it.
func WrapBlock(b Buffer, label BlockLabel) Buffer {
	b = b.Normalize()
	if b.Selection.IsEmpty() {
		return Insert(b, EmptyBlock(label), "")
	}
	return Insert(b, label.Open(), label.Close())
}

// Counts holds the statistics shown under the editor.
type Counts struct {
	// Words is the number of whitespace-delimited tokens.
	Words int `json:"words"`

	// Chars is the raw length in runes, whitespace included.
	Chars int `json:"chars"`

	// Lines is the number of newline-separated segments, at least 1.
	Lines int `json:"lines"`
}

// String formats the counts the way the editor footer shows them.
func (c Counts) String() string {
	return fmt.Sprintf("Words: %d | Characters: %d | Lines: %d", c.Words, c.Chars, c.Lines)
}

// CountText computes Counts for text.
func CountText(text string) Counts {
	return Counts{
		Words: len(strings.Fields(text)),
		Chars: utf8.RuneCountInString(text),
		Lines: strings.Count(text, "\n") + 1,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
