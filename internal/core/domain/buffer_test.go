package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer_CaretAtEnd(t *testing.T) {
	b := NewBuffer("héllo")

	assert.Equal(t, Caret(5), b.Selection)
	assert.True(t, b.Selection.IsEmpty())
}

func TestBuffer_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		buffer   Buffer
		expected Selection
	}{
		{
			name:     "ordered selection is unchanged",
			buffer:   Buffer{Text: "hello", Selection: Selection{Start: 1, End: 3}},
			expected: Selection{Start: 1, End: 3},
		},
		{
			name:     "reversed selection is swapped",
			buffer:   Buffer{Text: "hello", Selection: Selection{Start: 4, End: 2}},
			expected: Selection{Start: 2, End: 4},
		},
		{
			name:     "out of range offsets are clamped",
			buffer:   Buffer{Text: "hello", Selection: Selection{Start: -3, End: 99}},
			expected: Selection{Start: 0, End: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.buffer.Normalize().Selection)
		})
	}
}

func TestBuffer_Validate(t *testing.T) {
	assert.NoError(t, Buffer{Text: "abc", Selection: Selection{Start: 0, End: 3}}.Validate())
	assert.ErrorIs(t, Buffer{Text: "abc", Selection: Selection{Start: 2, End: 1}}.Validate(), ErrInvalidSelection)
	assert.ErrorIs(t, Buffer{Text: "abc", Selection: Selection{Start: 0, End: 4}}.Validate(), ErrInvalidSelection)
	assert.ErrorIs(t, Buffer{Text: "abc", Selection: Selection{Start: -1, End: 1}}.Validate(), ErrInvalidSelection)
}

func TestBuffer_Selected(t *testing.T) {
	b := Buffer{Text: "Grüße aus Köln", Selection: Selection{Start: 10, End: 14}}
	assert.Equal(t, "Köln", b.Selected())
}

func TestInsert_BoldWrapsSelection(t *testing.T) {
	b := Buffer{Text: "Hello world", Selection: Selection{Start: 0, End: 5}}

	got := Insert(b, "**", "**")

	assert.Equal(t, "**Hello** world", got.Text)
	assert.Equal(t, Selection{Start: 2, End: 7}, got.Selection)
	assert.Equal(t, "Hello", got.Selected())
}

func TestInsert_AtCaret(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		before string
		after  string
	}{
		{name: "start of buffer", text: "abc", offset: 0, before: "*", after: "*"},
		{name: "middle of buffer", text: "abc", offset: 1, before: "[", after: "]"},
		{name: "end of buffer", text: "abc", offset: 3, before: "xyz", after: ""},
		{name: "empty buffer", text: "", offset: 0, before: "**", after: "**"},
		{name: "multibyte text", text: "añb", offset: 2, before: "é", after: "ü"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Buffer{Text: tt.text, Selection: Caret(tt.offset)}

			got := Insert(b, tt.before, tt.after)

			runes := []rune(tt.text)
			expected := string(runes[:tt.offset]) + tt.before + tt.after + string(runes[tt.offset:])
			assert.Equal(t, expected, got.Text)

			caret := tt.offset + len([]rune(tt.before))
			assert.Equal(t, Caret(caret), got.Selection)
		})
	}
}

func TestInsert_ReversedSelection(t *testing.T) {
	b := Buffer{Text: "one two", Selection: Selection{Start: 7, End: 4}}

	got := Insert(b, "_", "_")

	assert.Equal(t, "one _two_", got.Text)
	assert.Equal(t, "two", got.Selected())
}

func TestWrapBlock_NonEmptySelection(t *testing.T) {
	for _, label := range BlockLabels() {
		t.Run(label.String(), func(t *testing.T) {
			b := Buffer{Text: "before KEY after", Selection: Selection{Start: 7, End: 10}}

			got := WrapBlock(b, label)

			assert.Equal(t, "before "+label.Open()+"KEY"+label.Close()+" after", got.Text)
			assert.Equal(t, "KEY", got.Selected())
			assert.Contains(t, got.Text, `<div class="`+label.String()+`">`)
			assert.Equal(t, 7+len([]rune(label.Open())), got.Selection.Start)
		})
	}
}

func TestWrapBlock_EmptySelectionInsertsPlaceholder(t *testing.T) {
	b := Buffer{Text: "ab", Selection: Caret(1)}

	got := WrapBlock(b, BlockTheory)

	block := EmptyBlock(BlockTheory)
	assert.Equal(t, "a"+block+"b", got.Text)
	assert.True(t, got.Selection.IsEmpty())
	assert.Equal(t, 1+len([]rune(block)), got.Selection.Start)
	assert.Contains(t, got.Text, BlockPlaceholder)
}

func TestCountText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Counts
	}{
		{
			name:     "padded words",
			text:     "  a  b c  ",
			expected: Counts{Words: 3, Chars: 10, Lines: 1},
		},
		{
			name:     "two lines",
			text:     "a\nb",
			expected: Counts{Words: 2, Chars: 3, Lines: 2},
		},
		{
			name:     "empty text has one line",
			text:     "",
			expected: Counts{Words: 0, Chars: 0, Lines: 1},
		},
		{
			name:     "trailing newline adds a line",
			text:     "a\n",
			expected: Counts{Words: 1, Chars: 2, Lines: 2},
		},
		{
			name:     "runes not bytes",
			text:     "日本 語",
			expected: Counts{Words: 2, Chars: 4, Lines: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountText(tt.text))
		})
	}
}

func TestBuffer_Counts(t *testing.T) {
	b := NewBuffer("one two\nthree")
	require.Equal(t, CountText(b.Text), b.Counts())
}

func TestCounts_String(t *testing.T) {
	got := Counts{Words: 3, Chars: 17, Lines: 2}.String()
	assert.Equal(t, "Words: 3 | Characters: 17 | Lines: 2", got)
}
